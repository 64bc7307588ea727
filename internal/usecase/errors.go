package usecase

import "errors"

var (
	ErrInternal                = errors.New("internal error")
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrNotFound                = errors.New("not found")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrResumeParse             = errors.New("failed to parse resume")
	ErrResumeStorage           = errors.New("failed to store resume")
	ErrEmptyCompletion         = errors.New("empty completion")
	ErrMalformedCompletion     = errors.New("malformed completion")
	ErrSkillAlreadyExists      = errors.New("skill already exists")
	ErrSkillNotFound           = errors.New("skill not found")
	ErrInvalidProficiencyLevel = errors.New("invalid proficiency level")
)
