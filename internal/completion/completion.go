package completion

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Commands 是 Tab 补全使用的常用 Redis 命令名（大写）。
var Commands = []string{
	"APPEND", "AUTH", "BITCOUNT", "BLPOP", "BRPOP", "CLIENT", "CONFIG", "COPY",
	"DBSIZE", "DECR", "DECRBY", "DEL", "DUMP", "ECHO", "EVAL", "EVALSHA", "EXISTS",
	"EXPIRE", "EXPIREAT", "FLUSHALL", "FLUSHDB", "GET", "GETDEL", "GETEX", "GETRANGE",
	"GETSET", "HDEL", "HEXISTS", "HGET", "HGETALL", "HINCRBY", "HKEYS", "HLEN", "HMGET",
	"HSET", "HSETNX", "HVALS", "INCR", "INCRBY", "INCRBYFLOAT", "INFO", "KEYS", "LINDEX",
	"LINSERT", "LLEN", "LMOVE", "LPOP", "LPUSH", "LRANGE", "LREM", "LSET", "LTRIM",
	"MGET", "MSET", "MSETNX", "OBJECT", "PERSIST", "PEXPIRE", "PFADD", "PFCOUNT",
	"PING", "PTTL", "PUBLISH", "RANDOMKEY", "RENAME", "RENAMENX", "RPOP", "RPUSH",
	"SADD", "SCAN", "SCARD", "SDIFF", "SET", "SETEX", "SETNX", "SETRANGE", "SINTER",
	"SISMEMBER", "SMEMBERS", "SMOVE", "SPOP", "SRANDMEMBER", "SREM", "STRLEN",
	"SUNION", "TIME", "TOUCH", "TTL", "TYPE", "UNLINK", "XADD", "XLEN", "XRANGE",
	"ZADD", "ZCARD", "ZCOUNT", "ZINCRBY", "ZRANGE", "ZRANK", "ZREM", "ZREVRANGE",
	"ZSCORE",
}

// Completer 对输入的第一个词做模糊匹配。
type Completer struct {
	words []string
}

// New 以 Commands 加上额外词（如本地命令）构造 Completer。
func New(extra ...string) *Completer {
	seen := make(map[string]bool, len(Commands)+len(extra))
	words := make([]string, 0, len(Commands)+len(extra))
	for _, w := range append(append([]string(nil), extra...), Commands...) {
		w = strings.TrimSpace(w)
		if w == "" || seen[strings.ToLower(w)] {
			continue
		}
		seen[strings.ToLower(w)] = true
		words = append(words, w)
	}
	return &Completer{words: words}
}

// Suggest returns up to limit candidates for the partial command word,
// best match first. Exact prefix matches rank ahead of scattered ones.
func (c *Completer) Suggest(partial string, limit int) []string {
	partial = strings.TrimSpace(partial)
	if c == nil || partial == "" {
		return nil
	}
	lower := make([]string, len(c.words))
	for i, w := range c.words {
		lower[i] = strings.ToLower(w)
	}
	needle := strings.ToLower(partial)
	results := fuzzy.Find(needle, lower)
	sort.SliceStable(results, func(i, j int) bool {
		pi := strings.HasPrefix(results[i].Str, needle)
		pj := strings.HasPrefix(results[j].Str, needle)
		if pi != pj {
			return pi
		}
		if results[i].Score == results[j].Score {
			return len(results[i].Str) < len(results[j].Str)
		}
		return results[i].Score > results[j].Score
	})
	out := make([]string, 0, len(results))
	for _, res := range results {
		out = append(out, c.words[res.Index])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Complete 补全输入中的命令名。只在光标仍处于第一个词时生效，返回替换后的完整输入。
func (c *Completer) Complete(input string) (string, bool) {
	trimmed := strings.TrimLeft(input, " ")
	if trimmed == "" || strings.ContainsAny(trimmed, " \t") {
		return input, false
	}
	suggestions := c.Suggest(trimmed, 1)
	if len(suggestions) == 0 {
		return input, false
	}
	return suggestions[0] + " ", true
}
