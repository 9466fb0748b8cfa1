package decision

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// 中文说明：
// 组合方案的结构校验。模型输出是不可信输入，进入清洗逻辑前先用
// JSON Schema 约束字段形态（buys/sells 必须是对象数组、金额必须是数字），
// 通不过的输出整体按畸形丢弃，由调用方回退到单一动作解析。

const comboSchemaYAML = `
$schema: https://json-schema.org/draft/2020-12/schema
type: object
properties:
  buys:
    type: array
    items:
      type: object
      properties:
        symbol: { type: string }
        quote_usdt: { type: [number, string] }
      required: [symbol]
  sells:
    type: array
    items:
      type: object
      properties:
        symbol: { type: string }
        quantity: { type: [number, string] }
      required: [symbol]
  confidence: { type: [number, string] }
  rationale: { type: string }
anyOf:
  - required: [buys]
  - required: [sells]
`

var (
	comboSchemaOnce sync.Once
	comboSchema     *jsonschema.Schema
	comboSchemaErr  error
)

func compiledComboSchema() (*jsonschema.Schema, error) {
	comboSchemaOnce.Do(func() {
		var doc any
		if err := yaml.Unmarshal([]byte(comboSchemaYAML), &doc); err != nil {
			comboSchemaErr = fmt.Errorf("combo schema yaml 解析失败: %w", err)
			return
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			comboSchemaErr = fmt.Errorf("combo schema 编码失败: %w", err)
			return
		}
		comboSchema, comboSchemaErr = jsonschema.CompileString("combo.schema.json", string(raw))
	})
	return comboSchema, comboSchemaErr
}

// ValidateComboShape 校验组合方案 JSON 的字段形态。
func ValidateComboShape(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("json 内容为空")
	}
	schema, err := compiledComboSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("json 格式无效: %w", err)
	}
	return schema.Validate(doc)
}
