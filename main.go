package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/config"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/dao"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/events"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/handlers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/lock"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/providers"
	"github.com/companieshouse/payment-collections.api.ch.gov.uk/service"
	"github.com/gorilla/mux"
)

func main() {
	log.Namespace = "payment-collections.api.ch.gov.uk"

	if loaded := config.LoadDotEnv(); len(loaded) > 0 {
		log.Info("loaded environment files", log.Data{"files": loaded})
	}

	cfg, err := config.Get()
	if err != nil {
		log.Error(fmt.Errorf("error configuring service: %s. Exiting", err))
		os.Exit(1)
	}
	if err = cfg.Validate(); err != nil {
		log.Error(err)
		os.Exit(1)
	}

	paymentsDAO := dao.NewDAO(cfg)

	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.RedisURL != "" {
		redisLocker, err := lock.NewRedisLocker(cfg.RedisURL, cfg.LockTTL())
		if err != nil {
			log.Error(fmt.Errorf("error connecting to redis: [%v]", err))
			os.Exit(1)
		}
		defer redisLocker.Close()
		locker = redisLocker
	}

	registry := providers.NewRegistry(providers.SystemProvider{})
	if cfg.PaypalEnv != "" {
		client, err := providers.GetPayPalClient(cfg)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		registry.Register(&providers.PayPalProvider{Client: client, PaymentsAPIURL: cfg.PaymentsAPIURL})
	}
	log.Info("payment providers registered", log.Data{"providers": registry.IDs()})

	var producer service.EventProducer
	if len(cfg.BrokerAddr) > 0 {
		kafkaProducer, err := events.NewKafkaProducer(cfg)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		producer = kafkaProducer
	}

	router := mux.NewRouter()
	handlers.Register(router,
		&service.PaymentCollectionService{DAO: paymentsDAO, Locker: locker, Config: *cfg},
		&service.PaymentSessionService{DAO: paymentsDAO, Locker: locker, Providers: registry, Events: producer},
		&service.PaymentService{DAO: paymentsDAO, Locker: locker, Providers: registry, Events: producer},
	)

	log.Info("Starting payment-collections.api.ch.gov.uk service", log.Data{"bind_addr": cfg.BindAddr})
	err = http.ListenAndServe(cfg.BindAddr, router)
	if err != nil {
		log.Error(err)
	}
	log.Trace("Exiting payment-collections.api.ch.gov.uk service")
}
