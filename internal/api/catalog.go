package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/haierkeys/bitshared-cli/internal/domain"
)

// Majors GET api/majors
func (c *Client) Majors(ctx context.Context) ([]*domain.Major, error) {
	data, _, err := callEnvelope[[]*domain.Major](ctx, c, request{method: http.MethodGet, path: "api/majors"})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*domain.Major{}, nil
	}
	return *data, nil
}

// Courses GET api/majors/{no}/courses
func (c *Client) Courses(ctx context.Context, majorNo int64) ([]*domain.Course, error) {
	data, _, err := callEnvelope[[]*domain.Course](ctx, c, request{
		method: http.MethodGet,
		path:   "api/majors/" + strconv.FormatInt(majorNo, 10) + "/courses",
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []*domain.Course{}, nil
	}
	return *data, nil
}
