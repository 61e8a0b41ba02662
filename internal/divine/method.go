package divine

import "fmt"

// Method selects the line-generation algorithm for a casting.
type Method string

const (
	MethodImage  Method = "image"
	MethodCoins  Method = "coins"
	MethodYarrow Method = "yarrow"
)

// ParseMethod validates a user-supplied method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodImage, MethodCoins, MethodYarrow:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown casting method %q (want image, coins or yarrow)", s)
}
