// sqlc генерирует sql-пакеты для каждого queries.sql из .sqlc.base.yaml.
// Запуск из корня репозитория: go run ./cmd/sqlc
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	baseConfigName = ".sqlc.base"
	tmpConfigName  = "sqlc.yaml"
)

// target: один queries.sql и пакет, в который sqlc пишет код.
type target struct {
	queries string
	outDir  string
	pkg     string
}

func newTarget(file string) target {
	dir := filepath.Dir(file)
	return target{queries: file, outDir: dir, pkg: filepath.Base(dir)}
}

func loadBase() (*viper.Viper, []target, error) {
	v := viper.New()
	v.SetConfigName(baseConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		return nil, nil, errors.Wrap(err, "read base config")
	}

	patterns := v.GetStringSlice("sql.0.source")
	if len(patterns) == 0 {
		return nil, nil, errors.New("base config has no sql.0.source")
	}

	var targets []target
	for _, p := range patterns {
		files, err := filepath.Glob(p)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "glob %s", p)
		}
		for _, f := range files {
			targets = append(targets, newTarget(f))
		}
	}
	return v, targets, nil
}

func renderConfig(base *viper.Viper, t target) ([]byte, error) {
	engine := base.Sub("sql.0")
	if engine == nil {
		return nil, errors.New("base config has no sql.0")
	}
	engine.Set("queries", t.queries)
	engine.Set("gen.go.package", t.pkg)
	engine.Set("gen.go.out", t.outDir)

	settings := engine.AllSettings()
	delete(settings, "source")

	bs, err := yaml.Marshal(map[string]any{
		"version": base.GetString("version"),
		"sql":     []any{settings},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal config to yaml")
	}
	return bs, nil
}

func generate(cfg []byte) error {
	if err := os.WriteFile(tmpConfigName, cfg, 0o644); err != nil {
		return errors.Wrap(err, "write sqlc.yaml")
	}
	defer os.Remove(tmpConfigName)

	out, err := exec.Command("sqlc", "generate", "--file", tmpConfigName).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "call sqlc: %s", out)
	}
	return nil
}

func main() {
	base, targets, err := loadBase()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for _, t := range targets {
		cfg, err := renderConfig(base, t)
		if err == nil {
			err = generate(cfg)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", t.queries, err)
			os.Exit(1)
		}
		fmt.Printf("%s -> package %s\n", t.queries, t.pkg)
	}
	fmt.Println("done")
}
