// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"crypto/ecdsa"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// initLogger installs a terminal log handler at the given level as the
// default go-ethereum/log logger. Both this module's own loggers and the
// Discv5 engine's internal logging (go-ethereum's own log calls) share
// this same package, so there's no second log system to bridge here.
func initLogger(levelName string) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(parseLevel(levelName))

	useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	handler := log.NewTerminalHandlerWithLevel(io.Writer(os.Stdout), &level, useColor)
	log.SetDefault(log.NewLogger(handler))

	return &level
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "crit":
		return log.LevelCrit
	case "error":
		return log.LevelError
	case "warn":
		return log.LevelWarn
	case "debug":
		return log.LevelDebug
	case "trace":
		return log.LevelTrace
	default:
		return log.LevelInfo
	}
}

func loadOrGenerateKeyFile(keyFile string) (key *ecdsa.PrivateKey, err error) {
	if !filepath.IsAbs(keyFile) {
		if keyFile, err = filepath.Abs(keyFile); err != nil {
			return nil, err
		}
	}

	if key, err = crypto.LoadECDSA(keyFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		return key, nil
	}

	key, err = crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	if err := crypto.SaveECDSA(keyFile, key); err != nil {
		return nil, err
	}
	return key, nil
}

func mustHomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		return u.HomeDir
	}
	return filepath.Base(os.Args[0])
}
