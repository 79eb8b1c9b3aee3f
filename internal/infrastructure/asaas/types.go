package asaas

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cliente é o registro de customer devolvido pelo Asaas.
type Cliente struct {
	ID                   string `json:"id"`
	DateCreated          string `json:"dateCreated"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	MobilePhone          string `json:"mobilePhone"`
	CpfCnpj              string `json:"cpfCnpj"`
	PersonType           string `json:"personType"`
	ForeignCustomer      bool   `json:"foreignCustomer"`
	Address              string `json:"address"`
	AddressNumber        string `json:"addressNumber"`
	Complement           string `json:"complement"`
	Province             string `json:"province"`
	City                 int64  `json:"city"`
	CityName             string `json:"cityName"`
	State                string `json:"state"`
	Country              string `json:"country"`
	PostalCode           string `json:"postalCode"`
	AdditionalEmails     string `json:"additionalEmails"`
	ExternalReference    string `json:"externalReference"`
	NotificationDisabled bool   `json:"notificationDisabled"`
	Observations         string `json:"observations"`
	Deleted              bool   `json:"deleted"`
}

// NovoCliente é o payload de criação de customer.
type NovoCliente struct {
	Name                 string `json:"name"`
	CpfCnpj              string `json:"cpfCnpj"`
	Phone                string `json:"phone,omitempty"`
	MobilePhone          string `json:"mobilePhone,omitempty"`
	Email                string `json:"email,omitempty"`
	Complement           string `json:"complement,omitempty"`
	ExternalReference    string `json:"externalReference,omitempty"`
	NotificationDisabled bool   `json:"notificationDisabled"`
}

// CartaoCredito é o sub-objeto creditCard presente em installments e payments.
type CartaoCredito struct {
	CreditCardNumber string `json:"creditCardNumber"`
	CreditCardBrand  string `json:"creditCardBrand"`
	CreditCardToken  string `json:"creditCardToken"`
}

// Parcelamento é o registro de installment devolvido pelo Asaas.
type Parcelamento struct {
	ID                    string          `json:"id"`
	DateCreated           string          `json:"dateCreated"`
	Value                 decimal.Decimal `json:"value"`
	NetValue              decimal.Decimal `json:"netValue"`
	PaymentValue          decimal.Decimal `json:"paymentValue"`
	InstallmentCount      int             `json:"installmentCount"`
	BillingType           string          `json:"billingType"`
	PaymentDate           string          `json:"paymentDate"`
	Description           string          `json:"description"`
	ExpirationDay         int             `json:"expirationDay"`
	Customer              string          `json:"customer"`
	PaymentLink           string          `json:"paymentLink"`
	CheckoutSession       string          `json:"checkoutSession"`
	TransactionReceiptURL string          `json:"transactionReceiptUrl"`
	CreditCard            *CartaoCredito  `json:"creditCard"`
	Deleted               bool            `json:"deleted"`
}

// Desconto é o sub-objeto discount de um payment.
type Desconto struct {
	Value            decimal.Decimal `json:"value"`
	DueDateLimitDays int             `json:"dueDateLimitDays"`
	Type             string          `json:"type"`
}

// Percentual é o sub-objeto fine/interest de um payment.
type Percentual struct {
	Value decimal.Decimal `json:"value"`
}

// Cobranca é o registro de payment devolvido pelo Asaas.
type Cobranca struct {
	ID                    string          `json:"id"`
	DateCreated           string          `json:"dateCreated"`
	Customer              string          `json:"customer"`
	Subscription          string          `json:"subscription"`
	Installment           string          `json:"installment"`
	InstallmentNumber     int             `json:"installmentNumber"`
	Value                 decimal.Decimal `json:"value"`
	NetValue              decimal.Decimal `json:"netValue"`
	OriginalValue         decimal.Decimal `json:"originalValue"`
	InterestValue         decimal.Decimal `json:"interestValue"`
	Description           string          `json:"description"`
	BillingType           string          `json:"billingType"`
	Status                string          `json:"status"`
	DueDate               string          `json:"dueDate"`
	OriginalDueDate       string          `json:"originalDueDate"`
	PaymentDate           string          `json:"paymentDate"`
	ClientPaymentDate     string          `json:"clientPaymentDate"`
	CreditDate            string          `json:"creditDate"`
	EstimatedCreditDate   string          `json:"estimatedCreditDate"`
	CheckoutSession       string          `json:"checkoutSession"`
	PaymentLink           string          `json:"paymentLink"`
	InvoiceURL            string          `json:"invoiceUrl"`
	InvoiceNumber         string          `json:"invoiceNumber"`
	ExternalReference     string          `json:"externalReference"`
	NossoNumero           string          `json:"nossoNumero"`
	BankSlipURL           string          `json:"bankSlipUrl"`
	CanBePaidAfterDueDate bool            `json:"canBePaidAfterDueDate"`
	PixTransaction        string          `json:"pixTransaction"`
	PixQrCodeID           string          `json:"pixQrCodeId"`
	CreditCard            *CartaoCredito  `json:"creditCard"`
	TransactionReceiptURL string          `json:"transactionReceiptUrl"`
	Discount              *Desconto       `json:"discount"`
	Fine                  *Percentual     `json:"fine"`
	Interest              *Percentual     `json:"interest"`
	Deleted               bool            `json:"deleted"`
	Anticipated           bool            `json:"anticipated"`
	Anticipable           bool            `json:"anticipable"`
	PostalService         bool            `json:"postalService"`

	DaysAfterDueDateToRegistrationCancellation int `json:"daysAfterDueDateToRegistrationCancellation"`
}

// NovaCobranca é o payload de criação de payment. Com InstallmentCount > 1 o
// Asaas cria o plano completo e devolve a primeira parcela com Installment
// preenchido.
type NovaCobranca struct {
	Customer             string           `json:"customer"`
	BillingType          string           `json:"billingType"`
	Value                decimal.Decimal  `json:"value"`
	DueDate              string           `json:"dueDate"`
	InstallmentCount     int              `json:"installmentCount,omitempty"`
	InstallmentValue     *decimal.Decimal `json:"installmentValue,omitempty"`
	Description          string           `json:"description,omitempty"`
	ExternalReference    string           `json:"externalReference,omitempty"`
	NotificationDisabled bool             `json:"notificationDisabled"`
}

// Pagina é o envelope de listagem do Asaas. HasMore indica se existe próxima
// página no mesmo passo de offset.
type Pagina[T any] struct {
	Data       []T  `json:"data"`
	HasMore    bool `json:"hasMore"`
	TotalCount int  `json:"totalCount"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}

// APIError representa o corpo de erro padrão do Asaas.
type APIError struct {
	StatusCode int
	Errors     []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("asaas: status %d: %s", e.StatusCode, e.Errors[0].Description)
	}
	return fmt.Sprintf("asaas: status %d", e.StatusCode)
}

// NotFound reporta se o provedor devolveu 404.
func (e *APIError) NotFound() bool { return e.StatusCode == 404 }
