package assets

import (
	"errors"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"
)

var ErrDestroyFailed = errors.New("asset host rejected the delete request")

// Remover deletes uploaded images from the external asset host. Destroy is
// idempotent: deleting an already-absent asset is not an error.
type Remover interface {
	Destroy(publicID string) error
}

type hostedRemover struct {
	client *resty.Client
}

// NewHostedRemover builds a Remover from ASSET_HOST_* environment variables.
func NewHostedRemover() Remover {
	client := resty.New().
		SetBaseURL(os.Getenv("ASSET_HOST_BASE_URL")).
		SetBasicAuth(os.Getenv("ASSET_HOST_KEY"), os.Getenv("ASSET_HOST_SECRET"))
	return &hostedRemover{client: client}
}

func (r *hostedRemover) Destroy(publicID string) error {
	resp, err := r.client.R().
		SetPathParam("id", publicID).
		Delete("/assets/{id}")
	if err != nil {
		return err
	}
	// 404 means the asset is already gone, which is the state we wanted.
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return ErrDestroyFailed
	}
	return nil
}
