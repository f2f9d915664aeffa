// Package urls names the locations handlers redirect to.
package urls

import (
	"net/url"

	"github.com/google/uuid"
)

const (
	SignIn        = "/api/auth/signin"
	ProfileView   = "/api/auth/profile"
	ProfileCreate = "/api/auth/profile/create"
	PostList      = "/api/posts"
	JobList       = "/api/jobs"
)

func PostDetail(slug string) string {
	return PostList + "/" + url.PathEscape(slug)
}

func JobDetail(id uuid.UUID) string {
	return JobList + "/" + id.String()
}

// SignInNext sends the client to sign-in and back to next afterwards.
func SignInNext(next string) string {
	return SignIn + "?next=" + url.QueryEscape(next)
}
