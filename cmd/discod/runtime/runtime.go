// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime wires command-line flags to a running peer address
// discovery service.
package runtime

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/ethereum/go-ethereum/p2p/nat"
	"github.com/ethereum/go-ethereum/p2p/netutil"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/dvnode/dvnode/metrics"
	"github.com/dvnode/dvnode/p2p/peerdisc"
)

var logger = log.New("pkg", "discod")

var (
	version   string
	gitCommit string
	gitTag    string
)

func run(ctx context.Context, cctx *cli.Command) error {
	initLogger(cctx.String("verbosity"))

	natm, err := nat.Parse(cctx.String("nat"))
	if err != nil {
		return errors.Wrap(err, "-nat")
	}

	var key *ecdsa.PrivateKey
	if keyHex := cctx.String("keyhex"); keyHex != "" {
		if key, err = crypto.HexToECDSA(keyHex); err != nil {
			return errors.Wrap(err, "-keyhex")
		}
	} else {
		if key, err = loadOrGenerateKeyFile(cctx.String("keyfile")); err != nil {
			return errors.Wrap(err, "-keyfile")
		}
	}

	var restrictList *netutil.Netlist
	if netrestrict := cctx.String("netrestrict"); netrestrict != "" {
		if restrictList, err = netutil.ParseNetlist(netrestrict); err != nil {
			return errors.Wrap(err, "-netrestrict")
		}
	}

	udpAddr, err := net.ResolveUDPAddr("udp", cctx.String("addr"))
	if err != nil {
		return errors.Wrap(err, "-addr")
	}

	bootNodes := make([]*enode.Node, 0, len(cctx.StringSlice("bootnode")))
	for _, s := range cctx.StringSlice("bootnode") {
		n, err := enode.ParseV4(s)
		if err != nil {
			return errors.Wrapf(err, "-bootnode %q", s)
		}
		bootNodes = append(bootNodes, n)
	}

	if cctx.Bool("enable-metrics") {
		metrics.InitializePrometheusMetrics()
		url, cleanup, err := startMetricsServer(cctx.String("metrics-addr"))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		defer cleanup()
		logger.Info("metrics server started", "url", url)
	}

	ip := udpAddr.IP
	if ip == nil || ip.IsUnspecified() {
		ip = net.IPv4(127, 0, 0, 1)
	}

	svc, err := peerdisc.Start(peerdisc.Config{
		IP:          ip,
		UDPPort:     udpAddr.Port,
		Key:         key,
		BootNodes:   bootNodes,
		BaseDir:     cctx.String("datadir"),
		NAT:         natm,
		NetRestrict: restrictList,
	})
	if err != nil {
		return errors.Wrap(err, "start discovery service")
	}
	defer svc.Close()

	logger.Info("discod running", "addr", udpAddr.String())

	<-ctx.Done()
	return nil
}

// Start builds and runs the discod CLI application with args (typically
// os.Args).
func Start(args []string) {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}

	app := &cli.Command{
		Name:    "discod",
		Usage:   "peer address discovery service",
		Version: fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta),
		Flags: []cli.Flag{
			addrFlag,
			bootNodesFlag,
			keyFileFlag,
			keyHexFlag,
			dataDirFlag,
			verbosityFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			natFlag,
			netRestrictFlag,
		},
		Action: run,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
