package models

// FollowUpRequest asks for interviewer follow-up questions to one answer.
type FollowUpRequest struct {
	QuestionText string `json:"question_text"`
	ResponseText string `json:"response_text"`
}

func (r *FollowUpRequest) Validate() error {
	if r.QuestionText == "" {
		return &ErrorResponse{Code: "missing_question_text", Message: "question_text is required"}
	}
	if r.ResponseText == "" {
		return &ErrorResponse{Code: "missing_response_text", Message: "response_text is required"}
	}
	return nil
}

type FollowUpResponse struct {
	Questions []string `json:"questions"`
}

// PersonalizedQuestionsRequest asks for practice questions tailored to the
// caller's goals and weak areas.
type PersonalizedQuestionsRequest struct {
	Role       string   `json:"role"`
	Company    string   `json:"company"`
	Weaknesses []string `json:"weaknesses"`
}

func (r *PersonalizedQuestionsRequest) Validate() error {
	if r.Role == "" && r.Company == "" && len(r.Weaknesses) == 0 {
		return &ErrorResponse{
			Code:    "empty_request",
			Message: "At least one of role, company, or weaknesses is required",
		}
	}
	return nil
}

// CoachingTipsRequest asks for practice tips given a session outcome.
type CoachingTipsRequest struct {
	OverallScore float64  `json:"overall_score"`
	Weaknesses   []string `json:"weaknesses"`
}

func (r *CoachingTipsRequest) Validate() error {
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return &ErrorResponse{Code: "invalid_score", Message: "overall_score must be between 0 and 100"}
	}
	return nil
}

type CoachingTipsResponse struct {
	Tips []string `json:"tips"`
}
