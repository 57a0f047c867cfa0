package consts

// Injected via -ldflags at build time.
var (
	gitSha = "unknown"
	gitTag = "dev"
)

func GetBuildInfo() map[string]string {
	return map[string]string{
		"version":  gitTag,
		"revision": gitSha,
	}
}
