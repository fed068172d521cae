// Sample wiring of the normalization endpoint with a demo schema.
package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/hanpama/gqlnorm/internal/eventbus"
	"github.com/hanpama/gqlnorm/internal/schema"
	"github.com/hanpama/gqlnorm/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	eventbus.Use(eventbus.New())

	sch := &schema.Schema{QueryType: "Query", MutationType: "Mutation"}
	handler := server.New(sch, server.WithPretty(), server.WithCORS("*"))

	log.Printf("demo normalizer listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, handler))
}
