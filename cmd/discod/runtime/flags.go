// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"path/filepath"

	"github.com/urfave/cli/v3"
)

func envVar(name string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(cli.EnvVar("DISCOD_" + name))
}

func defaultKeyFile() string {
	return filepath.Join(mustHomeDir(), ".dvnode-discod.key")
}

func defaultDataDir() string {
	return filepath.Join(mustHomeDir(), ".dvnode-discod")
}

var (
	addrFlag = &cli.StringFlag{
		Name:    "addr",
		Value:   ":55555",
		Usage:   "discovery listen address",
		Sources: envVar("ADDR"),
	}
	bootNodesFlag = &cli.StringSliceFlag{
		Name:    "bootnode",
		Usage:   "enode URL of a boot node, may be repeated",
		Sources: envVar("BOOTNODES"),
	}
	keyFileFlag = &cli.StringFlag{
		Name:    "keyfile",
		Usage:   "private key file path",
		Value:   defaultKeyFile(),
		Sources: envVar("KEYFILE"),
	}
	keyHexFlag = &cli.StringFlag{
		Name:    "keyhex",
		Usage:   "private key as hex",
		Sources: envVar("KEYHEX"),
	}
	dataDirFlag = &cli.StringFlag{
		Name:    "datadir",
		Value:   defaultDataDir(),
		Usage:   "directory to persist the peer address store",
		Sources: envVar("DATADIR"),
	}
	natFlag = &cli.StringFlag{
		Name:    "nat",
		Value:   "none",
		Usage:   "port mapping mechanism (any|none|upnp|pmp|extip:<IP>)",
		Sources: envVar("NAT"),
	}
	netRestrictFlag = &cli.StringFlag{
		Name:    "netrestrict",
		Usage:   "restrict network communication to the given IP networks (CIDR masks)",
		Sources: envVar("NETRESTRICT"),
	}
	verbosityFlag = &cli.StringFlag{
		Name:    "verbosity",
		Value:   "info",
		Usage:   "log verbosity (crit|error|warn|info|debug|trace)",
		Sources: envVar("VERBOSITY"),
	}
	enableMetricsFlag = &cli.BoolFlag{
		Name:    "enable-metrics",
		Usage:   "enables metrics collection",
		Sources: envVar("ENABLE_METRICS"),
	}
	metricsAddrFlag = &cli.StringFlag{
		Name:    "metrics-addr",
		Value:   "localhost:2112",
		Usage:   "metrics service listening address",
		Sources: envVar("METRICS_ADDR"),
	}
)
