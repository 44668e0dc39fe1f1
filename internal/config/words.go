package config

// Default preserved vocabulary. These lists seed the word-preservation and
// word-shape checks; a config file can replace or extend them. The words
// cover common English, technical terms, and file-structure tokens that
// show up in log lines and must survive redaction.

// DefaultPreservedWords returns the built-in preserved word list.
func DefaultPreservedWords() []string {
	return []string{
		// Common English
		"about", "after", "again", "all", "also", "and", "any", "are",
		"back", "because", "been", "before", "being", "between", "both",
		"but", "came", "can", "come", "could", "day", "did", "does",
		"down", "each", "even", "every", "final", "first", "for", "from",
		"get", "good", "had", "has", "have", "here", "how", "into",
		"its", "just", "know", "last", "like", "long", "made", "make",
		"many", "more", "most", "much", "must", "new", "next", "none",
		"not", "now", "off", "old", "one", "only", "other", "our",
		"out", "over", "own", "same", "see", "should", "simple", "since",
		"some", "still", "such", "take", "than", "that", "the", "their",
		"them", "then", "there", "these", "they", "this", "those", "time",
		"two", "under", "use", "used", "very", "was", "way", "well",
		"were", "what", "when", "where", "which", "while", "who", "will",
		"with", "would", "year", "your",

		// Technical terms
		"admin", "agent", "alert", "analysis", "api", "application",
		"archive", "attempt", "audit", "auth", "backend", "backup",
		"batch", "binary", "bucket", "buffer", "build", "cache", "client",
		"cluster", "command", "commit", "company", "config",
		"configuration", "connection", "console", "container", "context",
		"controller", "daemon", "data", "database", "debug", "default",
		"deploy", "deployment", "development", "device", "disk", "docker",
		"domain", "driver", "endpoint", "engine", "entry", "environment",
		"error", "event", "exception", "failed", "failure", "fatal",
		"fetch", "filter", "frontend", "function", "functions", "gateway",
		"handler", "health", "host", "image", "index", "info", "instance",
		"internal", "interface", "job", "kernel", "kubernetes", "lambda",
		"launch", "level", "listener", "local", "lock", "logger", "login",
		"manager", "memory", "message", "method", "metric", "metrics",
		"model", "module", "monitor", "mount", "network", "node", "object",
		"offset", "output", "package", "parser", "partition", "password",
		"pending", "pipeline", "plugin", "pod", "policy", "pool", "port",
		"primary", "process", "produce", "production", "profile", "proxy",
		"public", "query", "queue", "record", "registry", "release",
		"reload", "replica", "report", "request", "resource", "response",
		"restart", "result", "retry", "role", "router", "runtime",
		"schedule", "scheduler", "schema", "scope", "secret", "secure",
		"server", "service", "session", "shard", "shell", "shutdown",
		"signal", "socket", "source", "staging", "startup", "state",
		"status", "stream", "string", "success", "support", "system",
		"table", "target", "task", "template", "thread", "timeout",
		"timestamp", "token", "topic", "trace", "traffic", "upgrade",
		"upload", "uptime", "user", "value", "vendor", "volume", "warning",
		"watcher", "webhook", "worker", "workflow", "workspace",

		// File-structure tokens
		"bin", "boot", "dev", "directory", "document", "etc", "file",
		"files", "folder", "home", "lib", "log", "logs", "media", "opt",
		"path", "proc", "program", "root", "run", "share", "snap", "srv",
		"sys", "temp", "tmp", "usr", "var", "version",
	}
}

// DefaultPreservedPrefixes returns prefixes that suggest a token is a real
// word rather than noise.
func DefaultPreservedPrefixes() []string {
	return []string{
		"anti", "auto", "con", "counter", "de", "dis", "down", "fore",
		"in", "inter", "micro", "mid", "mis", "multi", "non", "out",
		"over", "pre", "pro", "re", "semi", "sub", "super", "trans",
		"ultra", "un", "under", "up",
	}
}

// DefaultPreservedSuffixes returns suffixes that suggest a token is a real
// word rather than noise.
func DefaultPreservedSuffixes() []string {
	return []string{
		"able", "age", "ance", "ant", "ary", "ate", "ation", "ed", "ence",
		"ent", "er", "est", "ful", "ible", "ic", "ing", "ion", "ish",
		"ism", "ist", "ity", "ive", "less", "ly", "ment", "ness", "or",
		"ous", "ship", "sion", "tion", "ure",
	}
}
