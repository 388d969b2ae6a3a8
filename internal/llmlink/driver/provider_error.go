package driver

import "fmt"

// ProviderError reports a non-2xx answer from a completion endpoint. The
// service layer wraps it into a transport failure; RawResponse keeps the
// body bytes for logging. Never put credentials in RawResponse or Message.
type ProviderError struct {
	Provider    string
	StatusCode  int
	Message     string
	RawResponse []byte
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "provider error"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s call failed: %s", e.Provider, e.Message)
}
