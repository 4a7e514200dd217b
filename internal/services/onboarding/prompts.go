package onboarding

const (
	welcomePrompt = "Welcome the user in 2 sentences on our platform"

	currentWorkPrompt = "Ask the user in one or two friendly sentences what their current work is. " +
		"Use the conversation so far as context."

	reasonForInterviewPrompt = "Ask the user in one or two friendly sentences why they are preparing " +
		"for an interview right now."

	interviewProcessPrompt = "Ask the user in one or two friendly sentences where they currently are " +
		"in the interview process."

	targetCompanyPrompt = "Ask the user in one or two friendly sentences whether there is a specific " +
		"company they are targeting."

	onboardingSummaryPrompt = "Write a single concise paragraph summarizing this candidate for an " +
		"interview coach. Cover their current role, experience, skills, certifications, the reason " +
		"they are interviewing, where they are in the process and any target company. " +
		"Use only the provided data."
)
