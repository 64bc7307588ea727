package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"careerpath/internal/domain/chat"
	"careerpath/internal/domain/course"
	"careerpath/internal/domain/matching"
	"careerpath/internal/pkg/logger"
	"careerpath/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const chatFallbackReply = "I'm sorry, I couldn't generate a response. Please try again."

// UserContext is the profile summary injected into chat prompts.
type UserContext struct {
	SkillsList      string
	CurrentPosition string
	TargetCareer    string
	Education       string
}

type ChatReply struct {
	Message string
	Courses []course.Course
}

type ChatUsecase interface {
	Reply(ctx context.Context, userID uuid.UUID, msgs []chat.Message) (ChatReply, error)
}

type Chat struct {
	llm        Completer
	matcher    *CourseMatcher
	userSkills repository.UserSkillRepository
	profiles   repository.ProfileRepository
	log        *logger.Logger
}

func NewChatUsecase(llm Completer, matcher *CourseMatcher, userSkills repository.UserSkillRepository, profiles repository.ProfileRepository, log *logger.Logger) *Chat {
	return &Chat{
		llm:        llm,
		matcher:    matcher,
		userSkills: userSkills,
		profiles:   profiles,
		log:        logger.OrNop(log).With("component", "chat"),
	}
}

func (u *Chat) Reply(ctx context.Context, userID uuid.UUID, msgs []chat.Message) (ChatReply, error) {
	if len(msgs) == 0 {
		return ChatReply{}, ErrInvalidInput
	}
	for _, m := range msgs {
		if !m.Role.Valid() {
			return ChatReply{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, m.Role)
		}
	}

	uc := u.loadContext(ctx, userID)

	courses := []course.Course{}
	if chat.ShouldRecommendCourses(msgs) {
		last, _ := chat.LastUserMessage(msgs)
		query := u.matcher.RefineForChat(ctx, uc, last)
		courses = u.matcher.Find(ctx, query, matching.FlowChat)
	}

	prompt := make([]chat.Message, 0, len(msgs)+1)
	prompt = append(prompt, chat.Message{Role: chat.RoleSystem, Content: buildCounselorPrompt(uc, len(courses))})
	prompt = append(prompt, msgs...)

	out, err := u.llm.Complete(ctx, prompt, chat.CompletionOptions{Temperature: 0.7, MaxTokens: 2048})
	if err != nil {
		return ChatReply{}, fmt.Errorf("chat completion: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		out = chatFallbackReply
	}
	return ChatReply{Message: out, Courses: courses}, nil
}

// loadContext reads skills and profile concurrently. Either half failing
// leaves its defaults in place.
func (u *Chat) loadContext(ctx context.Context, userID uuid.UUID) UserContext {
	uc := UserContext{
		SkillsList:      "No skills recorded",
		CurrentPosition: "Unknown",
		TargetCareer:    "Not specified",
		Education:       "Not specified",
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := u.userSkills.FindByUserID(gctx, userID)
		if err != nil {
			u.log.Warn("load user skills failed", "user_id", userID, "error", err)
			return nil
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, fmt.Sprintf("%s (%s)", it.SkillName, it.ProficiencyLevel))
		}
		if len(parts) > 0 {
			uc.SkillsList = strings.Join(parts, ", ")
		}
		return nil
	})

	var (
		position, target, education string
	)
	g.Go(func() error {
		p, err := u.profiles.FindByUserID(gctx, userID)
		if err != nil {
			if !errors.Is(err, repository.ErrProfileNotFound) {
				u.log.Warn("load career profile failed", "user_id", userID, "error", err)
			}
			return nil
		}
		position, target, education = p.CurrentPosition, p.ExpectedCareerPath, p.EducationLevel
		return nil
	})
	_ = g.Wait()

	if position != "" {
		uc.CurrentPosition = position
	}
	if target != "" {
		uc.TargetCareer = target
	}
	if education != "" {
		uc.Education = education
	}
	return uc
}

func buildCounselorPrompt(uc UserContext, courseCount int) string {
	courseNote := ""
	if courseCount > 0 {
		courseNote = fmt.Sprintf("\n\n**NOTE:** I have found %d relevant courses that will be displayed as cards below your response. Reference them naturally in your advice (e.g., \"I've found some great courses for you\" or \"check out the recommended courses below\").", courseCount)
	}

	var b strings.Builder
	b.WriteString("You are an expert AI career counselor with deep knowledge of career development, learning paths, and industry trends. You help users navigate their career journey.\n\n")
	b.WriteString("**USER PROFILE:**\n")
	fmt.Fprintf(&b, "- Current Position: %s\n", uc.CurrentPosition)
	fmt.Fprintf(&b, "- Target Career Path: %s\n", uc.TargetCareer)
	fmt.Fprintf(&b, "- Education Level: %s\n", uc.Education)
	fmt.Fprintf(&b, "- Current Skills: %s\n\n", uc.SkillsList)
	b.WriteString(counselorCapabilities)
	b.WriteString(courseNote)
	b.WriteString("\n\n")
	b.WriteString(counselorRules)
	return b.String()
}

const counselorCapabilities = `**YOUR CAPABILITIES:**
1. Analyze skill gaps between current and desired positions
2. Recommend specific learning paths and courses
3. Visualize career trajectories using Mermaid diagrams
4. Suggest alternative career paths based on existing skills
5. Provide actionable advice for career advancement

**IMPORTANT GUIDELINES:**
- Always personalize advice based on the user's profile
- Be encouraging but realistic about timelines
- When discussing career paths or trajectories, include a Mermaid diagram
- For trajectory diagrams, use the TD (top-down) direction
- Keep responses concise but comprehensive
- Focus on English-language courses and resources`

const counselorRules = "**SCOPE & LIMITATIONS (CRITICAL):**\n" +
	"- You are strictly a Career Counselor AI.\n" +
	"- **DO NOT** answer questions unrelated to careers, jobs, education, skills, resume building, or professional development.\n" +
	"- If a user asks about general topics (e.g., \"Write a poem about cats\", \"What is the capital of France?\", \"Coding help not related to career\"), politely decline and steer them back to their career path.\n" +
	"- Example refusal: \"I specialize in career counseling and professional development. I can help you plan your next career move or find relevant courses, but I can't assist with that.\"\n\n" +
	"**MERMAID DIAGRAM INSTRUCTIONS:**\n" +
	"When asked to visualize a career path, learning journey, or trajectory, include a Mermaid diagram using this format:\n\n" +
	"```mermaid\n" +
	"graph TD\n" +
	"    A[\"Current Role\"] --> B[\"Next Step\"]\n" +
	"    B --> C[\"Target Role\"]\n" +
	"```\n\n" +
	"**CRITICAL SYNTAX RULES:**\n" +
	"1. **ALWAYS** enclose node labels in double quotes. Example: `id[\"Label (Extra Info)\"]`.\n" +
	"2. Do NOT use unquoted text with parentheses or special characters.\n" +
	"3. Use the `graph TD` (Top-Down) orientation.\n" +
	"4. Keep diagrams simple and readable.\n\n" +
	"Make diagrams clear, logical, and actionable. Use descriptive labels."
