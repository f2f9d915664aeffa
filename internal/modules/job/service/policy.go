package job

import "anoa.com/careerhub/internal/entity"

func canCreateJob(actor *entity.User) bool {
	return actor.IsStaff
}

func canMutateJob(actor *entity.User, job *entity.Job) bool {
	return actor.IsStaff || job.UserID == actor.ID
}

// Staff get no override here: only the owner of the job may reject.
func canRejectApplicant(actor *entity.User, applicant *entity.JobApplicant) bool {
	return applicant.Job.UserID == actor.ID
}
