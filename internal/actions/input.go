package actions

import (
	"bytes"
	"encoding/json"
	"fmt"

	xerrors "Solagent-Core/internal/errors"

	"github.com/gagliardetto/solana-go"
)

// DecodeInput 把未类型化的输入映射到动作自定义的强类型结构。
// 未声明的字段会被拒绝，对应各动作 schema 中的
// additionalProperties: false。失败一律归为 INVALID_INPUT。
func DecodeInput(input map[string]any, out any) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return xerrors.Wrap(xerrors.CodeInvalidInput, err, "输入无法序列化")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return xerrors.Wrap(xerrors.CodeInvalidInput, err, "输入与期望形状不符")
	}
	return nil
}

// RequireString 读取必填的字符串字段。
func RequireString(input map[string]any, field string) (string, error) {
	value, ok := input[field]
	if !ok {
		return "", xerrors.New(xerrors.CodeInvalidInput,
			fmt.Sprintf("缺少必填字段 %s", field))
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", xerrors.New(xerrors.CodeInvalidInput,
			fmt.Sprintf("字段 %s 必须是非空字符串", field))
	}
	return s, nil
}

// ParsePublicKey 把 base58 字符串解析为公钥，失败归为 INVALID_INPUT。
func ParsePublicKey(field, value string) (solana.PublicKey, error) {
	pub, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, xerrors.Wrap(xerrors.CodeInvalidInput, err,
			fmt.Sprintf("字段 %s 不是合法的 Solana 地址", field))
	}
	return pub, nil
}
