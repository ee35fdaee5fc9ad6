// internal/domain/customer/dto.go
package customer

// CreateCustomerRequest is the payload of a remote create-customer call.
// Phone and Email are nil when the row has no usable value.
type CreateCustomerRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	Phone       *string           `json:"phone,omitempty"`
	Email       *string           `json:"email,omitempty"`
}
