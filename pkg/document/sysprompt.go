package document

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"promptdeck/pkg/logging"
)

const (
	// projectDir is the project-scoped settings directory under the root.
	projectDir = ".prompt"

	systemPromptFile = "system_prompt.txt"
	addonFile        = "system_prompt_addon.txt"

	// EnvSystemPrompt names an alternative system prompt file.
	EnvSystemPrompt = "PROMPTDECK_SYSTEM_PROMPT"

	// DefaultSystemPromptPath is the machine-wide fallback location.
	DefaultSystemPromptPath = "/etc/promptdeck/system_prompt.txt"
)

// ResolveSystemPrompt loads the system prompt for root by priority: the
// per-project file, then the path named by PROMPTDECK_SYSTEM_PROMPT, then the
// fixed default path. A missing prompt never fails the build; it surfaces as
// a loud placeholder embedded in the document so the user sees something was
// wrong. The optional per-project addon is appended when present.
func ResolveSystemPrompt(root string, logger *zap.Logger) string {
	logger = logging.Or(logger)

	candidates := []string{filepath.Join(root, projectDir, systemPromptFile)}
	if env := os.Getenv(EnvSystemPrompt); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, DefaultSystemPromptPath)

	var prompt string
	found := false
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		logger.Debug("Loaded system prompt", zap.String("file", path))
		prompt = string(data)
		found = true
		break
	}
	if !found {
		logger.Warn("No system prompt file found", zap.Strings("searched", candidates))
		prompt = fmt.Sprintf("[WARNING: no system prompt file found; searched %v]", candidates)
	}

	addonPath := filepath.Join(root, projectDir, addonFile)
	if data, err := os.ReadFile(addonPath); err == nil {
		logger.Debug("Appending system prompt addon", zap.String("file", addonPath))
		prompt = prompt + "\n\n" + string(data)
	}

	return prompt
}
