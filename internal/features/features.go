package features

// Stage describes how settled a feature flag is.
type Stage string

const (
	StageStable       Stage = "stable"
	StageExperimental Stage = "experimental"
)

// Spec describes a feature flag exposed by the CLI.
type Spec struct {
	Key            string
	Stage          Stage
	DefaultEnabled bool
	Summary        string
}

const (
	// Banner 启动时发送 INFO SERVER 并打印 Redis 启动横幅。
	Banner = "banner"
	// PersistHistory 把提交过的命令追加到 history_file。
	PersistHistory = "persist_history"
	// RawJSON 控制台启动时即打开 debug 模式，打印原始 JSON。
	RawJSON = "raw_json"
	// SaveSession 退出时保存 session token 以便 resume。
	SaveSession = "save_session"
)

var Specs = []Spec{
	{Key: Banner, Stage: StageStable, DefaultEnabled: false, Summary: "print the server start-up banner"},
	{Key: PersistHistory, Stage: StageStable, DefaultEnabled: true, Summary: "persist submitted commands"},
	{Key: RawJSON, Stage: StageExperimental, DefaultEnabled: false, Summary: "start with debug output enabled"},
	{Key: SaveSession, Stage: StageStable, DefaultEnabled: true, Summary: "save the session token on exit"},
}

var known = func() map[string]Spec {
	m := make(map[string]Spec, len(Specs))
	for _, spec := range Specs {
		m[spec.Key] = spec
	}
	return m
}()

// IsKnown reports whether the feature key is recognized.
func IsKnown(key string) bool {
	_, ok := known[key]
	return ok
}

// DefaultEnabled reports the default value for the given feature key.
func DefaultEnabled(key string) bool {
	if spec, ok := known[key]; ok {
		return spec.DefaultEnabled
	}
	return false
}

// Enabled resolves key against explicit overrides, falling back to the default.
func Enabled(overrides map[string]bool, key string) bool {
	if v, ok := overrides[key]; ok {
		return v
	}
	return DefaultEnabled(key)
}
