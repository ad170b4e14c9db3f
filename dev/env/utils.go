package devenv

import (
	"fmt"
	"linkedin-voyager/lib/configutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const moduleName = "linkedin-voyager"

var modName = regexp.MustCompile(`(?m)^module *([\w\-_]+)$`)

func isWorkspaceRoot(currentdir string) bool {
	mod, err := os.ReadFile(filepath.Join(currentdir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	isRoot := len(matches) >= 2 && string(matches[1]) == moduleName
	return isRoot
}

func GetWorkspaceRoot() (string, error) {
	currentdir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs("/")
	if err != nil {
		return "", err
	}

	for currentdir != root {
		isRoot := isWorkspaceRoot(currentdir)
		if !isRoot {
			currentdir = filepath.Join(currentdir, "..")
			continue
		}
		return currentdir, nil
	}

	return "", os.ErrNotExist
}

func GetStateFilePath(path string) (string, error) {
	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}
	configPath := filepath.Join(root, "dev/.state", path)
	return configPath, nil
}

func GetStateConfig[T any](path string) (T, error) {
	configPath, err := GetStateFilePath(path)
	if err != nil {
		var out T
		return out, err
	}
	out, err := configutil.ReadConfig[T](configPath)
	if err != nil {
		return out, fmt.Errorf("read %s: %w", configPath, err)
	}
	return out, nil
}

// WriteStateTemplate writes contents to the state file at path unless a file
// already exists there.
func WriteStateTemplate(path, contents string) (string, bool, error) {
	target, err := ResolvePath(filepath.Join("<dev_state>", path))
	if err != nil {
		return "", false, err
	}
	_, err = os.Stat(target)
	if err == nil {
		return target, false, nil
	}
	if !os.IsNotExist(err) {
		return "", false, err
	}
	err = os.MkdirAll(filepath.Dir(target), 0777)
	if err != nil {
		return "", false, err
	}
	return target, true, os.WriteFile(target, []byte(contents), 0600)
}

// WriteLinkedinTestTemplate writes an empty live test config to fill in.
func WriteLinkedinTestTemplate() (string, bool, error) {
	return WriteStateTemplate(LinkedinTestConfigFile, linkedinTestConfigTemplate)
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "<dev_state>") {
		return path, nil
	}

	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", err
	}

	err = os.Mkdir(filepath.Join(root, "dev", ".state"), 0777)
	if !os.IsExist(err) && err != nil {
		return "", err
	}

	subpath := filepath.Join(strings.Split(path, string(os.PathSeparator))[1:]...)
	statepath := filepath.Join(
		root, "dev", ".state", subpath,
	)

	return statepath, nil
}
