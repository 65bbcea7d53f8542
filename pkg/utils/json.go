package utils

import (
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var Json = jsoniter.ConfigCompatibleWithStandardLibrary

func WriteJsonToFile(dst string, data interface{}) error {
	content, err := Json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal json")
	}
	return errors.WithStack(os.WriteFile(dst, content, 0o644))
}
