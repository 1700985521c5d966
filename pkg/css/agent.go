package css

import _ "embed"

// AgentStylesheet is the built-in user-agent stylesheet. The CLI
// ingests it before any author stylesheet so author declarations win.
//
//go:embed agent.css
var AgentStylesheet string
