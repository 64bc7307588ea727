package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"careerpath/internal/domain/chat"
	"careerpath/internal/domain/profile"
	"careerpath/internal/infrastructure/resumetext"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
)

const resumeExtractionPrompt = `You are an expert career counselor AI. Your task is to extract structured data from a resume to pre-fill a career assessment form.

Extract the following fields:
1. currentJobTitle: The candidate's most recent or current job title.
2. yearsExperience: Map to one of ["0-1 years", "1-3 years", "3-5 years", "5-10 years", "10+ years"].
3. educationLevel: Map to one of ["High School", "Bootcamp / Certificate", "Associate Degree", "Bachelor's Degree", "Master's Degree", "PhD", "Self-Taught"].
4. technicalSkills: A single list of all technical skills found (languages, frameworks, tools). Each skill has a "name" and "level" (Beginner/Intermediate/Advanced/Expert).
5. softSkills: A list of soft skills found.
6. suggestedPath: A suggested target career path based on their background (e.g., "Full Stack Developer", "Data Scientist").

Return ONLY valid JSON in the following format, with no markdown formatting:
{
  "personalInfo": {
    "currentJobTitle": "string",
    "yearsExperience": "string",
    "educationLevel": "string"
  },
  "technicalSkills": [
    { "name": "string", "level": "string" }
  ],
  "softSkills": ["string"],
  "suggestedPath": "string"
}`

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// ResumeUpload is a résumé file as received from the client.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ResumeUsecase interface {
	Parse(ctx context.Context, userID uuid.UUID, in ResumeUpload) (profile.ResumeProfile, error)
}

type Resume struct {
	storage  ResumeStorage
	profiles repository.ProfileRepository
	llm      Completer
	now      func() time.Time
	log      *logger.Logger
}

func NewResumeUsecase(storage ResumeStorage, profiles repository.ProfileRepository, llm Completer, log *logger.Logger) *Resume {
	return &Resume{
		storage:  storage,
		profiles: profiles,
		llm:      llm,
		now:      time.Now,
		log:      logger.OrNop(log).With("component", "resume"),
	}
}

// Parse stores the file as the user's only résumé and extracts a
// structured profile from it.
func (u *Resume) Parse(ctx context.Context, userID uuid.UUID, in ResumeUpload) (profile.ResumeProfile, error) {
	if userID == uuid.Nil {
		return profile.ResumeProfile{}, ErrUnauthorized
	}
	if len(in.Data) == 0 {
		return profile.ResumeProfile{}, ErrInvalidInput
	}

	extractor, err := resumetext.ForFile(in.ContentType, in.Filename)
	if err != nil {
		return profile.ResumeProfile{}, ErrUnsupportedFileType
	}

	log := u.log.With("user_id", userID)
	if err := u.store(ctx, userID, in); err != nil {
		log.Error("store resume failed", "error", err)
		return profile.ResumeProfile{}, fmt.Errorf("%w: %v", ErrResumeStorage, err)
	}

	text, err := extractor.Extract(in.Data)
	if err != nil {
		log.Error("extract resume text failed", "filename", in.Filename, "error", err)
		return profile.ResumeProfile{}, fmt.Errorf("%w: %v", ErrResumeParse, err)
	}
	text = resumetext.Truncate(text, resumetext.MaxChars)

	out, err := u.llm.Complete(ctx, []chat.Message{
		{Role: chat.RoleSystem, Content: resumeExtractionPrompt},
		{Role: chat.RoleUser, Content: "Here is the resume text:\n\n" + text},
	}, chat.CompletionOptions{Temperature: 0.1, JSON: true})
	if err != nil {
		return profile.ResumeProfile{}, fmt.Errorf("resume analysis: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return profile.ResumeProfile{}, ErrEmptyCompletion
	}

	return decodeResumeProfile(out)
}

// store replaces every object under the user's prefix with the new file and
// points the career profile at it. Only the upload itself is fatal.
func (u *Resume) store(ctx context.Context, userID uuid.UUID, in ResumeUpload) error {
	prefix := userID.String() + "/"
	log := u.log.With("user_id", userID)

	if err := u.storage.DeletePrefix(ctx, prefix); err != nil {
		log.Warn("remove previous resume failed", "error", err)
	}

	key := prefix + strconv.FormatInt(u.now().UnixMilli(), 10) + "_" + SanitizeFilename(in.Filename)
	if err := u.storage.Upload(ctx, key, in.ContentType, bytes.NewReader(in.Data)); err != nil {
		return err
	}

	if err := u.profiles.UpsertResumeURL(ctx, userID, u.storage.PublicURL(key)); err != nil {
		log.Error("save resume url failed", "key", key, "error", err)
	}
	return nil
}

// SanitizeFilename replaces every character outside [A-Za-z0-9.-] with '_'.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

func decodeResumeProfile(raw string) (profile.ResumeProfile, error) {
	var p profile.ResumeProfile
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &p); err != nil {
		return profile.ResumeProfile{}, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
	}
	return p.Normalize(), nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
