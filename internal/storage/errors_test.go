package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestIsNoSuchBucket(t *testing.T) {
	assert.False(t, IsNoSuchBucket(nil))
	assert.True(t, IsNoSuchBucket(minio.ErrorResponse{Code: "NoSuchBucket"}))
	assert.True(t, IsNoSuchBucket(fmt.Errorf("list: %w", minio.ErrorResponse{Code: "NoSuchBucket"})))
	assert.True(t, IsNoSuchBucket(errors.New("The specified bucket does not exist")))
	assert.False(t, IsNoSuchBucket(minio.ErrorResponse{Code: "AccessDenied", Message: "denied"}))
}
