package entity

type ToolName string

// Tool names are a wire contract with the model: the upstream prompt is
// written against these exact names and argument sets.
const (
	ToolScrapeWebsite   ToolName = "scrape_website"
	ToolGetRelevantData ToolName = "get_relevant_data"
	ToolAnswerQuestions ToolName = "answer_questions"
)

func (t ToolName) String() string {
	return string(t)
}
