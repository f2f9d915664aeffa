package job

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"anoa.com/careerhub/internal/entity"
	jobDto "anoa.com/careerhub/internal/modules/job/dto"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/broker"
	commonDto "anoa.com/careerhub/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUsers) Create(context.Context, *entity.User) error { return nil }
func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsers) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUsers) EmailExists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUsers) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUsers) CreateProfile(context.Context, *entity.Profile) error { return nil }
func (f *fakeUsers) FindProfileByUserID(context.Context, uuid.UUID) (*entity.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeJobs struct {
	jobs map[uuid.UUID]*entity.Job
}

func (f *fakeJobs) Create(_ context.Context, job *entity.Job) error {
	job.ID = uuid.New()
	f.jobs[job.ID] = job
	return nil
}
func (f *fakeJobs) FindByID(_ context.Context, id uuid.UUID) (*entity.Job, error) {
	if j, ok := f.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeJobs) FindAll(context.Context, string) ([]*entity.Job, error) { return nil, nil }
func (f *fakeJobs) FindByUserID(context.Context, uuid.UUID) ([]*entity.Job, error) {
	return nil, nil
}
func (f *fakeJobs) Update(_ context.Context, job *entity.Job) error {
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}
func (f *fakeJobs) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.jobs, id)
	return nil
}

type fakeApplicants struct {
	rows      []*entity.JobApplicant
	jobs      *fakeJobs
	users     *fakeUsers
	createErr error
}

func (f *fakeApplicants) Create(_ context.Context, a *entity.JobApplicant) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = uuid.New()
	cp := *a
	f.rows = append(f.rows, &cp)
	return nil
}
func (f *fakeApplicants) FindByID(_ context.Context, id uuid.UUID) (*entity.JobApplicant, error) {
	for _, a := range f.rows {
		if a.ID == id {
			cp := *a
			cp.Job = *f.jobs.jobs[a.JobID]
			cp.User = *f.users.users[a.UserID]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeApplicants) FindByJobAndUser(_ context.Context, jobID, userID uuid.UUID) (*entity.JobApplicant, error) {
	for _, a := range f.rows {
		if a.JobID == jobID && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeApplicants) FindByJobID(_ context.Context, jobID uuid.UUID) ([]*entity.JobApplicant, error) {
	var out []*entity.JobApplicant
	for _, a := range f.rows {
		if a.JobID == jobID {
			cp := *a
			cp.User = *f.users.users[a.UserID]
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (f *fakeApplicants) FindByUserID(context.Context, uuid.UUID) ([]*entity.JobApplicant, error) {
	return nil, nil
}
func (f *fakeApplicants) Update(_ context.Context, a *entity.JobApplicant) error {
	for i, row := range f.rows {
		if row.ID == a.ID {
			cp := *row
			cp.ResumeURL = a.ResumeURL
			cp.Status = a.Status
			f.rows[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeStorage struct {
	uploads int
	deleted []string
}

func (f *fakeStorage) UploadFile(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	_, _ = io.ReadAll(r)
	f.uploads++
	return fmt.Sprintf("https://files.test/%s/%d-%s", folder, f.uploads, fileName), nil
}
func (f *fakeStorage) DeleteFile(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type fakeNotifier struct {
	created []*entity.Notification
}

func (f *fakeNotifier) CreateNotification(_ context.Context, n *entity.Notification) error {
	f.created = append(f.created, n)
	return nil
}
func (f *fakeNotifier) GetNotifications(context.Context, uuid.UUID, int, int) ([]entity.Notification, error) {
	return nil, nil
}
func (f *fakeNotifier) MarkAsRead(context.Context, uuid.UUID, uuid.UUID) error { return nil }
func (f *fakeNotifier) MarkAllAsRead(context.Context, uuid.UUID) error { return nil }
func (f *fakeNotifier) UnreadCount(context.Context, uuid.UUID) (int64, error) { return 0, nil }

type fakePublisher struct {
	events []broker.ApplicationEvent
}

func (f *fakePublisher) Publish(_ context.Context, e broker.ApplicationEvent) error {
	f.events = append(f.events, e)
	return nil
}
func (f *fakePublisher) Close() error { return nil }

type fixture struct {
	svc        Service
	users      *fakeUsers
	jobs       *fakeJobs
	applicants *fakeApplicants
	storage    *fakeStorage
	notifier   *fakeNotifier
	publisher  *fakePublisher

	owner      *entity.User
	otherStaff *entity.User
	seeker     *entity.User
	stranger   *entity.User
	job        *entity.Job
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		owner:      &entity.User{ID: uuid.New(), Username: "owner", IsStaff: true},
		otherStaff: &entity.User{ID: uuid.New(), Username: "staff2", IsStaff: true},
		seeker:     &entity.User{ID: uuid.New(), Username: "seeker"},
		stranger:   &entity.User{ID: uuid.New(), Username: "stranger"},
	}
	f.users = &fakeUsers{users: map[uuid.UUID]*entity.User{}}
	for _, u := range []*entity.User{f.owner, f.otherStaff, f.seeker, f.stranger} {
		f.users.users[u.ID] = u
	}
	f.jobs = &fakeJobs{jobs: map[uuid.UUID]*entity.Job{}}
	f.applicants = &fakeApplicants{jobs: f.jobs, users: f.users}
	f.storage = &fakeStorage{}
	f.notifier = &fakeNotifier{}
	f.publisher = &fakePublisher{}

	f.svc = NewService(f.jobs, f.applicants, f.users, f.storage, f.notifier, nil, f.publisher)

	created, err := f.svc.CreateJob(context.Background(), f.owner.ID, jobDto.JobRequest{
		Title:       "Go Engineer",
		Description: "<p>Build things</p><script>alert(1)</script>",
		MinOffer:    100,
		MaxOffer:    200,
		Location:    "Remote",
	})
	require.NoError(t, err)
	f.job = f.jobs.jobs[created.ID]
	return f
}

func resume(name string) *commonDto.UploadFile {
	return &commonDto.UploadFile{Reader: strings.NewReader("%PDF"), FileName: name}
}

func TestCreateJobRequiresStaff(t *testing.T) {
	f := newFixture(t)

	assert.NotContains(t, f.job.Description, "script")

	_, err := f.svc.CreateJob(context.Background(), f.seeker.ID, jobDto.JobRequest{Title: "x", Description: "y", Location: "z"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Len(t, f.jobs.jobs, 1)
}

func TestJobMutationPermissions(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(f *fixture) *entity.User
		allowed bool
	}{
		{"owner", func(f *fixture) *entity.User { return f.owner }, true},
		{"other staff", func(f *fixture) *entity.User { return f.otherStaff }, true},
		{"non-owner non-staff", func(f *fixture) *entity.User { return f.stranger }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name+" update", func(t *testing.T) {
			f := newFixture(t)
			req := jobDto.JobRequest{Title: "Renamed", Description: "d", MinOffer: 1, MaxOffer: 2, Location: "Here"}

			_, err := f.svc.UpdateJob(context.Background(), tt.actor(f).ID, f.job.ID, req)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "Renamed", f.jobs.jobs[f.job.ID].Title)
			} else {
				assert.ErrorIs(t, err, apperror.ErrForbidden)
				assert.Equal(t, "Go Engineer", f.jobs.jobs[f.job.ID].Title)
			}
		})

		t.Run(tt.name+" delete", func(t *testing.T) {
			f := newFixture(t)

			err := f.svc.DeleteJob(context.Background(), tt.actor(f).ID, f.job.ID)
			if tt.allowed {
				require.NoError(t, err)
				assert.NotContains(t, f.jobs.jobs, f.job.ID)
			} else {
				assert.ErrorIs(t, err, apperror.ErrForbidden)
				assert.Contains(t, f.jobs.jobs, f.job.ID)
			}
		})
	}
}

func TestMutatingUnknownJobIsNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteJob(context.Background(), f.stranger.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestJobDetailChecksExistenceBeforeLogin(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetJobDetail(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.GetJobDetail(context.Background(), nil, f.job.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = f.svc.Apply(context.Background(), nil, uuid.New(), resume("cv.pdf"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Apply(context.Background(), nil, f.job.ID, resume("cv.pdf"))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestApplyRequiresResume(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Apply(context.Background(), &f.seeker.ID, f.job.ID, nil)
	require.Error(t, err)
	assert.Equal(t, MsgResumeRequired, err.Error())
	assert.Equal(t, 400, apperror.MapErrorToStatus(err))
	assert.Empty(t, f.applicants.rows)
}

func TestDoubleApplyKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Apply(ctx, &f.seeker.ID, f.job.ID, resume("cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, jobDto.ApplyCreated, first.Outcome)

	second, err := f.svc.Apply(ctx, &f.seeker.ID, f.job.ID, resume("cv2.pdf"))
	require.NoError(t, err)
	assert.Equal(t, jobDto.ApplyAlreadyApplied, second.Outcome)

	require.Len(t, f.applicants.rows, 1)
	assert.Equal(t, entity.ApplicationPending, f.applicants.rows[0].Status)
	assert.Equal(t, 1, f.storage.uploads)

	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, f.owner.ID, f.notifier.created[0].UserID)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, broker.EventApplicationSubmitted, f.publisher.events[0].Type)
}

func TestReapplyAfterRejectionReusesRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Apply(ctx, &f.seeker.ID, f.job.ID, resume("cv.pdf"))
	require.NoError(t, err)
	oldResume := first.Applicant.ResumeURL

	rejected, err := f.svc.RejectApplicant(ctx, f.owner.ID, first.Applicant.ID)
	require.NoError(t, err)
	require.True(t, rejected.Rejected)
	assert.Equal(t, "seeker", rejected.Username)
	assert.Equal(t, entity.ApplicationRejected, f.applicants.rows[0].Status)

	again, err := f.svc.Apply(ctx, &f.seeker.ID, f.job.ID, resume("cv-v2.pdf"))
	require.NoError(t, err)
	assert.Equal(t, jobDto.ApplyResubmitted, again.Outcome)

	require.Len(t, f.applicants.rows, 1)
	row := f.applicants.rows[0]
	assert.Equal(t, first.Applicant.ID, row.ID)
	assert.Equal(t, entity.ApplicationPending, row.Status)
	assert.NotEqual(t, oldResume, row.ResumeURL)
	assert.Contains(t, row.ResumeURL, "resumes/"+f.job.ID.String())
	assert.Contains(t, f.storage.deleted, oldResume)
}

func TestApplyDuplicateKeyRaceReportsAlreadyApplied(t *testing.T) {
	f := newFixture(t)
	f.applicants.createErr = gorm.ErrDuplicatedKey

	res, err := f.svc.Apply(context.Background(), &f.seeker.ID, f.job.ID, resume("cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, jobDto.ApplyAlreadyApplied, res.Outcome)
	assert.Len(t, f.storage.deleted, 1)
}

func TestRejectByNonOwnerIsSoftDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	applied, err := f.svc.Apply(ctx, &f.seeker.ID, f.job.ID, resume("cv.pdf"))
	require.NoError(t, err)

	for _, actor := range []*entity.User{f.otherStaff, f.stranger, f.seeker} {
		res, err := f.svc.RejectApplicant(ctx, actor.ID, applied.Applicant.ID)
		require.NoError(t, err)
		assert.False(t, res.Rejected)
		assert.Equal(t, f.job.ID, res.JobID)
	}
	assert.Equal(t, entity.ApplicationPending, f.applicants.rows[0].Status)

	_, err = f.svc.RejectApplicant(ctx, f.owner.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestJobDetailShowsViewerApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, &f.seeker.ID, f.job.ID, resume("cv.pdf"))
	require.NoError(t, err)

	detail, err := f.svc.GetJobDetail(ctx, &f.seeker.ID, f.job.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.MyApplication)
	assert.Equal(t, "seeker", detail.MyApplication.User.Username)
	assert.Len(t, detail.Applicants, 1)
	assert.False(t, detail.CanEdit)

	detail, err = f.svc.GetJobDetail(ctx, &f.owner.ID, f.job.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.MyApplication)
	assert.True(t, detail.CanEdit)
}
