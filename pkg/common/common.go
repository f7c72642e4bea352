package common

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	snowflakeNode, err = snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a cluster-unique int64 identifier.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns the string form of a snowflake identifier.
func UUID() string {
	return snowflakeNode.Generate().String()
}

// Sha256Hash returns the hex sha256 digest of src.
func Sha256Hash(src string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(src)))
}

// EnvOrDefault reads an environment variable, falling back to defval when unset or blank.
func EnvOrDefault(name, defval string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return defval
}

// IsEmptyOrNA reports whether the value carries no usable content.
func IsEmptyOrNA(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "n/a")
}
