package console

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"interwebz-cli/internal/reply"
)

// ServerInfo 是横幅用到的 INFO SERVER 字段。
type ServerInfo struct {
	Version  string
	GitSHA1  string
	GitDirty string
	ArchBits string
	TCPPort  string
	PID      string
}

var infoFields = map[string]*regexp.Regexp{
	"redis_version":   regexp.MustCompile(`redis_version:(.*)`),
	"redis_git_sha1":  regexp.MustCompile(`redis_git_sha1:(.*)`),
	"redis_git_dirty": regexp.MustCompile(`redis_git_dirty:(.*)`),
	"arch_bits":       regexp.MustCompile(`arch_bits:(.*)`),
	"tcp_port":        regexp.MustCompile(`tcp_port:(.*)`),
	"process_id":      regexp.MustCompile(`process_id:(.*)`),
}

// ParseServerInfo 从 INFO SERVER 文本中取出横幅字段，缺少任意一个都算错误。
func ParseServerInfo(raw string) (ServerInfo, error) {
	values := make(map[string]string, len(infoFields))
	for name, re := range infoFields {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			return ServerInfo{}, fmt.Errorf("INFO SERVER reply has no %s field", name)
		}
		values[name] = strings.TrimSpace(m[1])
	}
	return ServerInfo{
		Version:  values["redis_version"],
		GitSHA1:  values["redis_git_sha1"],
		GitDirty: values["redis_git_dirty"],
		ArchBits: values["arch_bits"],
		TCPPort:  values["tcp_port"],
		PID:      values["process_id"],
	}, nil
}

const bannerArt = `                  _._
            _.-` + "``" + `__ ''-._
      _.-` + "``" + `    ` + "`" + `.  ` + "`" + `_.  ''-._            Redis %[1]s (%[2]s/%[3]s) %[4]s bit
    .-` + "``" + ` .-` + "```" + `.  ` + "```" + `/    _.,_ ''-._
  (    '      ,       .-` + "`" + `  | ` + "`" + `,    )     Running in standalone mode
  |` + "`" + `-._` + "`" + `-...-` + "`" + ` __...-.` + "``" + `-._|'` + "`" + ` _.-'|     Port: %[5]s
  |    ` + "`" + `-._   ` + "`" + `._    /     _.-'    |     PID: %[6]s
  ` + "`" + `-._    ` + "`" + `-._  ` + "`" + `-./  _.-'    _.-'
  |` + "`" + `-._` + "`" + `-._    ` + "`" + `-.__.-'    _.-'_.-'|
  |    ` + "`" + `-._` + "`" + `-._        _.-'_.-'    |           https://redis.io
  ` + "`" + `-._    ` + "`" + `-._` + "`" + `-.__.-'_.-'    _.-'
  |` + "`" + `-._` + "`" + `-._    ` + "`" + `-.__.-'    _.-'_.-'|
  |    ` + "`" + `-._` + "`" + `-._        _.-'_.-'    |
  ` + "`" + `-._    ` + "`" + `-._` + "`" + `-.__.-'_.-'    _.-'
      ` + "`" + `-._    ` + "`" + `-.__.-'    _.-'
          ` + "`" + `-._        _.-'
              ` + "`" + `-.__.-'
`

// FormatBanner 生成与 redis-server 启动日志相同形状的横幅。
func FormatBanner(info ServerInfo, now time.Time) string {
	ts := now.UTC().Format("2006-01-02T15:04:05.000Z")
	var b strings.Builder
	fmt.Fprintf(&b, "%s:C %s # oO0OoO0OoO0Oo Redis is starting oO0OoO0OoO0Oo\n", info.PID, ts)
	fmt.Fprintf(&b, "%s:C %s # Configuration loaded\n", info.PID, ts)
	fmt.Fprintf(&b, bannerArt, info.Version, info.GitSHA1, info.GitDirty, info.ArchBits, info.TCPPort, info.PID)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s:M %s # Server initialized\n", info.PID, ts)
	fmt.Fprintf(&b, "%s:M %s * Ready to accept connections", info.PID, ts)
	return b.String()
}

func (c *Controller) renderBanner(out Outcome) {
	if out.Err != nil {
		log.Warnf("banner: %v", out.Err)
		c.host.RenderLine("(fatal error) " + out.Err.Error())
		return
	}
	if len(out.Records) == 0 {
		c.host.RenderLine("(error) empty INFO SERVER reply")
		return
	}
	rec := out.Records[0]
	if rec.IsError {
		c.host.RenderLine(reply.Render(rec))
		return
	}
	text, ok := rec.Value.(reply.Text)
	if !ok {
		c.host.RenderLine(reply.Render(rec))
		return
	}
	info, err := ParseServerInfo(string(text))
	if err != nil {
		log.Warnf("banner: %v", err)
		c.host.RenderLine("(error) " + err.Error())
		return
	}
	c.host.RenderLine(FormatBanner(info, c.now()))
}
