// Package server provides the api server of the signer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	rpcjson "github.com/gorilla/rpc/v2/json2"

	"github.com/anyswap/solana-txcore/cmd/utils"
	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/rpc/restapi"
	"github.com/anyswap/solana-txcore/rpc/rpcapi"
)

// StartAPIServer start api server, it is shut down when utils.CleanupChan closes
func StartAPIServer(apiServer *params.APIServerConfig) {
	apiPort := apiServer.Port
	allowedOrigins := apiServer.AllowedOrigins

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(allowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(allowedOrigins),
		)
	}

	log.Info("JSON RPC service listen and serving", "port", apiPort, "allowedOrigins", allowedOrigins)
	svr := &http.Server{
		Addr:         fmt.Sprintf(":%v", apiPort),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      newHandler(apiServer.MaxRequestsPerSecond, corsOptions...),
	}
	go func() {
		if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("ListenAndServe error", "err", err)
		}
	}()

	utils.TopWaitGroup.Add(1)
	go func() {
		defer utils.TopWaitGroup.Done()
		<-utils.CleanupChan
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(ctx); err != nil {
			log.Warn("shutdown api server failed", "err", err)
		}
		log.Info("api server stopped")
	}()
}

func newHandler(maxRequestsPerSecond float64, corsOptions ...handlers.CORSOption) http.Handler {
	var handler http.Handler = handlers.CORS(corsOptions...)(initRouter())
	if maxRequestsPerSecond > 0 {
		limiter := tollbooth.NewLimiter(maxRequestsPerSecond, nil)
		handler = tollbooth.LimitHandler(limiter, handler)
	}
	return handler
}

func initRouter() *mux.Router {
	r := mux.NewRouter()

	rpcserver := rpc.NewServer()
	rpcserver.RegisterCodec(rpcjson.NewCodec(), "application/json")
	_ = rpcserver.RegisterService(new(rpcapi.RPCAPI), "solana")

	r.Handle("/rpc", rpcserver)
	r.HandleFunc("/serverinfo", restapi.ServerInfoHandler).Methods("GET")
	r.HandleFunc("/versioninfo", restapi.VersionInfoHandler).Methods("GET")
	r.HandleFunc("/tx/{txid}", restapi.SignedTxHandler).Methods("GET")
	r.HandleFunc("/tx/{txid}/raw", restapi.RawSignedTxHandler).Methods("GET")
	r.HandleFunc("/txs", restapi.SignedTxsHandler).Methods("GET")

	methodsExcluesGet := []string{"POST", "HEAD", "PUT", "DELETE", "CONNECT", "OPTIONS", "TRACE", "PATCH"}

	r.HandleFunc("/serverinfo", warnHandler).Methods(methodsExcluesGet...)
	r.HandleFunc("/versioninfo", warnHandler).Methods(methodsExcluesGet...)
	r.HandleFunc("/tx/{txid}", warnHandler).Methods(methodsExcluesGet...)
	r.HandleFunc("/tx/{txid}/raw", warnHandler).Methods(methodsExcluesGet...)
	r.HandleFunc("/txs", warnHandler).Methods(methodsExcluesGet...)

	return r
}

func warnHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "Forbid '%v' on '%v'\n", r.Method, r.RequestURI)
}
