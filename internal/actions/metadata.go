package actions

// Example 给出一组输入输出示例，供 AI 规划器理解动作的用法。
type Example struct {
	Input       map[string]any `json:"input"`
	Output      map[string]any `json:"output"`
	Explanation string         `json:"explanation"`
}

// Metadata 是动作的静态描述记录。Name 在整个注册表内唯一，
// 是调度键，注册与调用时必须逐字符一致（区分大小写）。
type Metadata struct {
	Name        string         `json:"name"`
	Similes     []string       `json:"similes"`
	Description string         `json:"description"`
	Examples    []Example      `json:"examples"`
	InputSchema map[string]any `json:"input_schema"`
}
