package reply

// Value 是后端单条命令返回值的闭合联合类型：Nil、Integer、Text、Array，
// 以及无法识别形态时的 Unknown 兜底分支。
type Value interface {
	isValue()
}

// Nil 对应 JSON null。
type Nil struct{}

// Integer 对应整数回复。
type Integer int64

// Text 对应字符串回复。
type Text string

// Array 对应有序的嵌套回复，可以为空。
type Array []Value

// Unknown 记录后端给出的非法形态（object、boolean、非整数 number）。
// 渲染时输出 -PROTOCOLERR 哨兵文本，而不是中断。
type Unknown struct {
	TypeName string
	Raw      string
}

func (Nil) isValue()     {}
func (Integer) isValue() {}
func (Text) isValue()    {}
func (Array) isValue()   {}
func (Unknown) isValue() {}

// Record 是一条命令对应的回复记录；批量请求中按提交顺序一一对应。
type Record struct {
	Value     Value
	IsError   bool
	ErrorText string
}

// ErrorRecord 构造一条错误记录。
func ErrorRecord(text string) Record {
	return Record{Value: Nil{}, IsError: true, ErrorText: text}
}
