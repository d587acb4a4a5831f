package commands

import "context"

// CredentialsFormat documents the wire form of exchange credentials.
const CredentialsFormat = "username@company_id:password"

// FormatCredentialsResponse carries the joined credential together with its
// parts. The password is only part of Credentials.
type FormatCredentialsResponse struct {
	Credentials string `json:"credentials"`
	Username    string `json:"username"`
	CompanyID   string `json:"company_id"`
	Format      string `json:"format"`
	Message     string `json:"message"`
}

// FormatCredentialsCommandHandler is stateless; it needs no persistence.
type FormatCredentialsCommandHandler struct{}

// NewFormatCredentialsCommandHandler creates the handler.
func NewFormatCredentialsCommandHandler() FormatCredentialsCommandHandler {
	return FormatCredentialsCommandHandler{}
}

// Handle never fails for a constructed command.
func (h FormatCredentialsCommandHandler) Handle(_ context.Context, cmd FormatCredentialsCommand) (FormatCredentialsResponse, error) {
	if err := cmd.Validate(); err != nil {
		return FormatCredentialsResponse{}, err
	}

	creds := cmd.Credentials()
	return FormatCredentialsResponse{
		Credentials: creds.String(),
		Username:    creds.Username(),
		CompanyID:   creds.CompanyID(),
		Format:      CredentialsFormat,
		Message:     "Credentials formatted successfully",
	}, nil
}
