package insight

const commitAnalysisPrompt = `Analyze these GitHub commits and provide insights about:
1. Common themes in commit messages
2. Code areas frequently modified
3. Notable changes or patterns
Please format your response in a clear, structured way.`

const repoAnalysisPrompt = `Analyze this GitHub repository information and provide insights about:
1. Repository size and activity level
2. Main programming languages
3. Notable features (stars, forks, etc.)
Please format your response in a clear, structured way.`

const customAnalysisPrompt = `You are a GitHub repository analysis assistant. Answer the user's question about the repository. When repository metadata or commit history is provided as context, ground your answer in it; otherwise answer from general knowledge and say what data you are missing.`
