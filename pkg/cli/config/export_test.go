package config

// NewAgentForTest creates an Agent config for testing purposes
func NewAgentForTest(path string) *Agent {
	return &Agent{path: path}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewOpenAIForTest creates an OpenAI config for testing purposes
func NewOpenAIForTest(apiKey, model, embeddingModel string) *OpenAI {
	return &OpenAI{
		apiKey:         apiKey,
		model:          model,
		embeddingModel: embeddingModel,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}
