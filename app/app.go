// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/glyphwallet/swap-engine/api"
	"github.com/glyphwallet/swap-engine/api/handlers"
	"github.com/glyphwallet/swap-engine/chains/evm"
	"github.com/glyphwallet/swap-engine/chains/svm"
	"github.com/glyphwallet/swap-engine/config"
	"github.com/glyphwallet/swap-engine/fees"
	"github.com/glyphwallet/swap-engine/health"
	"github.com/glyphwallet/swap-engine/intent"
	"github.com/glyphwallet/swap-engine/metrics"
	"github.com/glyphwallet/swap-engine/price"
	"github.com/glyphwallet/swap-engine/quote"
)

var Version string

func Run() error {
	var err error

	configFlag := viper.GetString(config.ConfigFlagName)

	var configuration *config.Config
	if strings.ToLower(configFlag) == "env" {
		configuration, err = config.GetConfigFromENV(nil)
		panicOnError(err)
	} else {
		configuration, err = config.GetConfigFromFile(configFlag, nil)
		panicOnError(err)
	}

	configureLogger(configuration.EngineConfig.LogLevel)

	log.Info().Msg("Successfully loaded configuration")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go health.StartHealthEndpoint(configuration.EngineConfig.HealthPort)

	tokenStore := &config.TokenStore{
		Tokens:        make(map[uint64]map[string]config.TokenConfig),
		WrappedNative: make(map[uint64]common.Address),
		Natives:       make(map[uint64]config.NativeCurrency),
	}
	evmClients := make(map[uint64]evm.ChainClient)
	evmPricers := make(map[uint64]fees.GasPricer)
	svmClients := make(map[uint64]svm.RPCClient)
	vmTypes := make(map[uint64]config.VmType)
	supportedChains := make(map[uint64]struct{})

	for _, chainConfig := range configuration.ChainConfigs {
		vmType, err := config.ParseVmType(fmt.Sprintf("%v", chainConfig["type"]))
		panicOnError(err)

		switch vmType {
		case config.VmTypeEvm:
			{
				config, err := evm.NewEVMConfig(chainConfig)
				panicOnError(err)

				client, err := ethclient.Dial(config.GeneralChainConfig.Endpoint)
				panicOnError(err)

				id := *config.GeneralChainConfig.Id
				evmClients[id] = client
				evmPricers[id] = evm.NewGasEstimator(client)
				vmTypes[id] = vmType
				supportedChains[id] = struct{}{}
				tokenStore.Tokens[id] = config.Tokens
				tokenStore.SetNative(id, config.GeneralChainConfig.NativeSymbol, config.GeneralChainConfig.NativeDecimals)
				if config.WrappedNative != (common.Address{}) {
					tokenStore.WrappedNative[id] = config.WrappedNative
				}

				log.Info().Uint64("chain", id).Msgf("Registered EVM chain")
			}
		case config.VmTypeSvm:
			{
				config, err := svm.NewSVMConfig(chainConfig)
				panicOnError(err)

				id := *config.GeneralChainConfig.Id
				svmClients[id] = solanarpc.New(config.GeneralChainConfig.Endpoint)
				vmTypes[id] = vmType
				supportedChains[id] = struct{}{}
				tokenStore.SetNative(id, config.GeneralChainConfig.NativeSymbol, config.GeneralChainConfig.NativeDecimals)

				log.Info().Uint64("chain", id).Msgf("Registered SVM chain")
			}
		}
	}

	calculator := fees.NewCalculator(evmPricers, svm.NewFeeHistory(svmClients))

	priceAPI := price.NewCoinmarketcapAPI(
		configuration.EngineConfig.PriceURL,
		configuration.EngineConfig.PriceApiKey)
	routingAPI := quote.NewAPI(configuration.EngineConfig.RoutingURL)
	watcher := quote.NewWatcher(routingAPI, tokenStore, priceAPI)

	settlementAPI := intent.NewAPI(configuration.EngineConfig.SettlementURL)
	poller := intent.NewPoller(settlementAPI, noopRefresher{}, configuration.EngineConfig.ExplorerURL)

	meter := otel.GetMeterProvider().Meter("engine-metric-provider")
	engineMetrics, err := metrics.NewEngineMetrics(
		ctx,
		meter,
		metric.WithAttributes(attribute.String("version", Version)))
	panicOnError(err)

	quoteHandler := handlers.NewQuoteHandler(watcher, supportedChains)
	swapsHandler := handlers.NewSwapsHandler(routingAPI, engineMetrics)
	statusHandler := handlers.NewStatusHandler(poller, engineMetrics)
	maxAmountHandler := handlers.NewMaxAmountHandler(calculator, vmTypes)

	var wg conc.WaitGroup
	wg.Go(func() {
		watcher.Start(ctx)
	})
	wg.Go(func() {
		api.Serve(
			ctx,
			configuration.EngineConfig.ApiAddr,
			quoteHandler,
			swapsHandler,
			statusHandler,
			maxAmountHandler)
	})

	sysErr := make(chan os.Signal, 1)
	signal.Notify(sysErr, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sysErr
	log.Info().Msgf("terminating got [%v] signal", sig)
	cancel()
	wg.Wait()
	return nil
}

// noopRefresher satisfies the poller's balance hook in server mode, where
// there is no wallet to refresh.
type noopRefresher struct{}

func (noopRefresher) Refresh(force bool) {}

func configureLogger(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func panicOnError(err error) {
	if err != nil {
		panic(err)
	}
}
