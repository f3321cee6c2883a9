package leave

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, req LeaveRequest) error
	Update(ctx context.Context, req LeaveRequest) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (LeaveRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
}

// FileStore is the blob-storage collaborator for attachments. The returned
// URL is stored verbatim on the request.
type FileStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// Notifier delivers best-effort notifications. Errors are logged by the
// caller and never fail the lifecycle transition.
type Notifier interface {
	Create(ctx context.Context, recipientID, kind, title, body string) error
}

// Authorizer answers the capability checks performed once per operation.
type Authorizer interface {
	CanReview(actor Actor) bool
	CanEditOwn(actor Actor, req LeaveRequest) bool
}
