package util

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// ResolveHomePath expands a leading "~" to the home directory of the current user
func ResolveHomePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	currentUser, err := user.Current()
	if err != nil {
		return path, err
	}
	return filepath.Join(currentUser.HomeDir, path[1:]), nil
}

func ReadIntFromFile(path string) (value int, err error) {
	text, err := ReadStringFromFile(path)
	if err != nil {
		return -1, err
	}
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	value, err = strconv.Atoi(text)
	return value, err
}

// ReadStringFromFile reads the whole file and trims surrounding whitespace
func ReadStringFromFile(path string) (string, error) {
	path, err := ResolveHomePath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func resolvePath(path string) string {
	path, err := ResolveHomePath(path)
	if err != nil {
		return path
	}
	evaluatedPath, err := filepath.EvalSymlinks(path)
	if len(evaluatedPath) > 0 && err == nil {
		return evaluatedPath
	}
	return path
}

// WriteIntToFileAtomic writes a single integer to the given path,
// sysfs attributes are written in place since they cannot be renamed over
func WriteIntToFileAtomic(value int, path string) error {
	path = resolvePath(path)
	valueAsString := strconv.Itoa(value)
	if strings.HasPrefix(path, "/sys/") {
		return os.WriteFile(path, []byte(valueAsString), 0644)
	}
	return atomic.WriteFile(path, strings.NewReader(valueAsString))
}
