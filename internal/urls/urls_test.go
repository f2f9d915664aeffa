package urls

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestURLs(t *testing.T) {
	id := uuid.MustParse("0190d0b6-7c2a-7000-8000-000000000001")

	assert.Equal(t, "/api/jobs/0190d0b6-7c2a-7000-8000-000000000001", JobDetail(id))
	assert.Equal(t, "/api/posts/hello-world", PostDetail("hello-world"))
	assert.Equal(t, "/api/auth/signin?next=%2Fapi%2Fposts%3Fq%3Dgo", SignInNext("/api/posts?q=go"))
}
