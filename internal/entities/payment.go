package entities

type PaymentRequest struct {
	Amount         Money
	Currency       string
	Metadata       map[string]string
	IdempotencyKey string
}

type PaymentAuthorization struct {
	Reference    string
	ClientSecret string
}
