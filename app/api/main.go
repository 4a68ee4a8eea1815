package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/database/redisclient"
	"github.com/x-xyz/claimscore/base/log"
	bValidator "github.com/x-xyz/claimscore/base/validator"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/enrichment"
	"github.com/x-xyz/claimscore/domain/keys"
	"github.com/x-xyz/claimscore/domain/listing"
	"github.com/x-xyz/claimscore/domain/offer"
	"github.com/x-xyz/claimscore/domain/price"
	mmiddleware "github.com/x-xyz/claimscore/middleware"
	"github.com/x-xyz/claimscore/service/alchemy"
	"github.com/x-xyz/claimscore/service/cache"
	"github.com/x-xyz/claimscore/service/cache/provider"
	"github.com/x-xyz/claimscore/service/cache/provider/compound"
	"github.com/x-xyz/claimscore/service/cache/provider/primitive"
	redisCache "github.com/x-xyz/claimscore/service/cache/provider/redis"
	"github.com/x-xyz/claimscore/service/chain"
	"github.com/x-xyz/claimscore/service/chain/contract"
	"github.com/x-xyz/claimscore/service/coingecko"
	"github.com/x-xyz/claimscore/service/opensea"
	"github.com/x-xyz/claimscore/service/reservoir"
	balance_usecase "github.com/x-xyz/claimscore/stores/balance/usecase"
	dashboard_delivery "github.com/x-xyz/claimscore/stores/dashboard/delivery/http"
	dashboard_usecase "github.com/x-xyz/claimscore/stores/dashboard/usecase"
	enrichment_usecase "github.com/x-xyz/claimscore/stores/enrichment/usecase"
	hc_delivery "github.com/x-xyz/claimscore/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/claimscore/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/claimscore/stores/healthcheck/usecase"
	listing_usecase "github.com/x-xyz/claimscore/stores/listing/usecase"
	offer_usecase "github.com/x-xyz/claimscore/stores/offer/usecase"
	price_usecase "github.com/x-xyz/claimscore/stores/price/usecase"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/x-xyz/claimscore/app/api/docs"
)

func init() {
	configFile := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("http.timeout", 10*time.Second)
	viper.SetDefault("price.cacheTtl", time.Minute)
	viper.SetDefault("dashboard.runTtl", 30*time.Minute)
	viper.SetDefault("dashboard.cacheSizeMB", 64)
	viper.SetDefault("dashboard.defaultVariant", "opensea")
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.SetDebug(true)
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			Claimscore API
//	@version		1.0
//	@description	Ranks collection listings by the reward tokens claimable with the nft.

// main
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// run results live in process, backed by redis when configured
	runTtl := viper.GetDuration("dashboard.runTtl")
	localRuns := primitive.NewPrimitive("dashboard_runs", viper.GetInt("dashboard.cacheSizeMB"))
	var runProvider provider.Provider
	if uri := viper.GetString("redis_cache.uri"); uri != "" {
		context.Info("init redis cache")
		redisCachePool := redisclient.MustConnect(context, redisclient.Config{
			Uri:            uri,
			Password:       viper.GetString("redis_cache.password"),
			PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
			Retries:        3,
		})
		runProvider = compound.NewCompound(localRuns, redisCache.NewRedis(viper.GetString("redis_cache.name"), redisCachePool))
	} else {
		context.Info("init local cache")
		runProvider = localRuns
	}

	// init chain service
	networks := viper.Sub("networks")
	rpcs := make(map[int32]string)
	if networks != nil {
		for k := range networks.AllSettings() {
			chainId := networks.GetInt32(fmt.Sprintf("%s.chainId", k))
			rpcs[chainId] = networks.GetString(fmt.Sprintf("%s.rpcUrl", k))
		}
	}
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls:        rpcs,
		MaxConcurrency: viper.GetInt("chain.maxConcurrency"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}
	claimableChainId := viper.GetInt32("claimable.chainId")
	claimableContract := contract.NewClaimable(chainService, claimableChainId, viper.GetString("claimable.contract"))

	httpTimeout := viper.GetDuration("http.timeout")
	openseaApiKey := viper.GetString("opensea.apikey")
	openseaClient := opensea.NewClient(&opensea.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Apikey:     openseaApiKey,
		RateLimit:  viper.GetFloat64("opensea.rateLimit"),
	})
	reservoirApiKey := viper.GetString("reservoir.apikey")
	reservoirClient := reservoir.NewClient(&reservoir.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Apikey:     reservoirApiKey,
		RateLimit:  viper.GetFloat64("reservoir.rateLimit"),
	})
	alchemyApiKey := viper.GetString("alchemy.apikey")
	alchemyClient := alchemy.NewClient(&alchemy.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Apikey:     alchemyApiKey,
	})
	coinGecko := coingecko.NewClient(&coingecko.ClientCfg{
		HttpClient: http.Client{},
		Timeout:    httpTimeout,
		Apikey:     viper.GetString("coingecko.apikey"),
	})

	// construct sources
	collectionContract := domain.Address(viper.GetString("collection.contract"))
	if !bValidator.IsValidAddress(collectionContract.ToLowerStr()) {
		context.WithField("contract", collectionContract).Panic("invalid collection contract")
	}
	links := listing.LinkBuilder{
		Contract:      collectionContract,
		ImageTemplate: viper.GetString("collection.imageTemplate"),
	}
	maxPages := viper.GetInt("collection.maxPages")
	listingSources := map[string]listing.Source{
		listing_usecase.SourceOpensea: listing_usecase.NewOpensea(&listing_usecase.OpenseaUseCaseCfg{
			Client:   openseaClient,
			Apikey:   openseaApiKey,
			Slug:     viper.GetString("collection.slug"),
			Links:    links,
			MaxPages: maxPages,
		}),
		listing_usecase.SourceReservoir: listing_usecase.NewReservoir(&listing_usecase.ReservoirUseCaseCfg{
			Client:   reservoirClient,
			Apikey:   reservoirApiKey,
			Contract: collectionContract,
			Links:    links,
			MaxPages: maxPages,
		}),
	}
	offerSources := map[string]offer.Source{
		offer_usecase.SourceOpensea: offer_usecase.NewOpensea(&offer_usecase.OpenseaUseCaseCfg{
			Client:   openseaClient,
			Apikey:   openseaApiKey,
			Slug:     viper.GetString("collection.slug"),
			MaxPages: maxPages,
		}),
		offer_usecase.SourceReservoir: offer_usecase.NewReservoir(&offer_usecase.ReservoirUseCaseCfg{
			Client:     reservoirClient,
			Apikey:     reservoirApiKey,
			Collection: collectionContract.ToLowerStr(),
			MaxPages:   maxPages,
		}),
	}

	nativeToken := domain.Address(viper.GetString("native.token"))
	if nativeToken.IsEmpty() {
		nativeToken = domain.ChainIdWrappedNativeMap[domain.ChainId(claimableChainId)]
	}

	var priceSource price.Source
	switch p := viper.GetString("price.provider"); p {
	case price_usecase.ProviderCoingecko:
		priceSource = price_usecase.NewCoingecko(&price_usecase.CoingeckoUseCaseCfg{
			Client:      coinGecko,
			ClaimableId: viper.GetString("claimable.coingeckoId"),
			NativeId:    viper.GetString("native.coingeckoId"),
		})
	case price_usecase.ProviderAlchemy, "":
		priceSource = price_usecase.NewAlchemy(&price_usecase.AlchemyUseCaseCfg{
			Client:         alchemyClient,
			Apikey:         alchemyApiKey,
			Network:        viper.GetString("alchemy.network"),
			ClaimableToken: domain.Address(viper.GetString("claimable.token")),
			NativeToken:    nativeToken,
		})
	default:
		context.WithField("provider", p).Panic("unknown price provider")
	}
	priceSource = price_usecase.NewCached(priceSource, cache.New(cache.ServiceConfig{
		Ttl:   viper.GetDuration("price.cacheTtl"),
		Pfx:   keys.PfxPriceSnapshot,
		Cache: primitive.NewPrimitive("price_snapshot", 1),
	}))

	variants := []enrichment_usecase.Variant{}
	variantCfgs := viper.Sub("dashboard.variants")
	if variantCfgs == nil {
		context.Panic("dashboard.variants not configured")
	}
	for name := range variantCfgs.AllSettings() {
		v := enrichment_usecase.Variant{
			Name:    name,
			Scoring: enrichment.Scoring(variantCfgs.GetString(name + ".scoring")),
		}
		listings, ok := listingSources[variantCfgs.GetString(name+".listings")]
		if !ok {
			context.WithField("variant", name).Panic("unknown listing source")
		}
		v.Listings = listings
		if o := variantCfgs.GetString(name + ".offers"); o != "" {
			if v.Offers, ok = offerSources[o]; !ok {
				context.WithField("variant", name).Panic("unknown offer source")
			}
		}
		if !v.Scoring.IsValid() {
			context.WithField("variant", name).Panic("unknown scoring")
		}
		variants = append(variants, v)
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(chainService, claimableChainId, runProvider)
	hcUsecase := hc_usecase.New(hcRepo)

	balance := balance_usecase.New(&balance_usecase.BalanceUseCaseCfg{
		Contract: claimableContract,
		Workers:  viper.GetInt("balance.workers"),
	})
	enrichmentUsecase := enrichment_usecase.New(&enrichment_usecase.EnrichmentUseCaseCfg{
		Variants: variants,
		Balances: balance,
		Prices:   priceSource,
	})
	dashboard := dashboard_usecase.New(&dashboard_usecase.DashboardUseCaseCfg{
		Enrichment: enrichmentUsecase,
		Runs: cache.New(cache.ServiceConfig{
			Ttl:   runTtl,
			Pfx:   keys.PfxDashboardRun,
			Cache: runProvider,
		}),
		DefaultVariant: viper.GetString("dashboard.defaultVariant"),
		Workers:        viper.GetInt("dashboard.workers"),
	})

	hc_delivery.New(e, hcUsecase)
	dashboard_delivery.New(e, dashboard)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
