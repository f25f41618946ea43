package services

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageService uploads images to Cloudinary. Credentials come from the
// CLOUDINARY_URL environment variable.
type ImageService struct {
	cld *cloudinary.Cloudinary
}

func NewImageService() (*ImageService, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, err
	}
	return &ImageService{cld: cld}, nil
}

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Upload accepts a base64 data URI (or a remote URL) and stores it in the
// blog-posts folder, capped to 1200x630 with automatic quality and format.
func (s *ImageService) Upload(ctx context.Context, image string) (*UploadResult, error) {
	resp, err := s.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder:         "blog-posts",
		ResourceType:   "image",
		Transformation: "c_limit,w_1200,h_630/q_auto/f_auto",
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Width:    resp.Width,
		Height:   resp.Height,
	}, nil
}
