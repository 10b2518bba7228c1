package storage

import (
	"context"

	"movievault/errs"
	"movievault/movie"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// uploadAPI is the slice of the Cloudinary SDK the strategy needs.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// Cloudinary uploads staged posters to the hosted media account and returns
// the service-provided HTTPS URL. The staging file is removed on success and
// failure alike.
type Cloudinary struct {
	api    uploadAPI
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, errs.Errorf(errs.EINTERNAL, "storage: cloudinary init: %v", err)
	}
	return &Cloudinary{
		api:    &cld.Upload,
		folder: posterFolder,
	}, nil
}

func (s *Cloudinary) Save(ctx context.Context, u movie.Upload) (string, error) {
	defer removeTempFile(u.TempPath)

	resp, err := s.api.Upload(ctx, u.TempPath, uploader.UploadParams{
		Folder: s.folder,
	})
	if err != nil {
		return "", errs.Errorf(errs.EINTERNAL, "storage: cloudinary upload: %v", err)
	}
	if resp.Error.Message != "" {
		return "", errs.Errorf(errs.EINTERNAL, "storage: cloudinary upload: %s", resp.Error.Message)
	}

	return resp.SecureURL, nil
}
