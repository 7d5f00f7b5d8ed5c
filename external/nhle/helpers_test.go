package nhle

import sonic "github.com/bytedance/sonic"

func decodeForTest(raw []byte, target any) error {
	return sonic.Unmarshal(raw, target)
}
