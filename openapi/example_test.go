package openapi_test

import (
	"fmt"
	"net/http"

	"github.com/vitalvas/baasdoc/openapi"
	"github.com/vitalvas/baasdoc/respcode"
)

type Pet struct {
	ID    int64  `json:"id"`
	Name  string `json:"name" openapi:"description=Pet name,minLength=1"`
	Owner *Owner `json:"owner,omitempty"`
}

type Owner struct {
	Name string `json:"name"`
	Pets []Pet  `json:"pets"`
}

func ExampleSpec() {
	notFound := respcode.New(respcode.Client, 404, http.StatusNotFound, "Pet not found")

	spec := openapi.NewSpec(openapi.Info{Title: "Pet Store", Version: "1.0.0"})
	pets := spec.Module(openapi.Tag{Name: "pets"}).Prefix("/api/v1")

	if _, err := pets.Register(pets.Op(http.MethodGet, "/pets/{id:[0-9]+}").
		OperationID("getPet").
		Response(Pet{}).
		Errors(notFound)); err != nil {
		fmt.Println(err)
		return
	}

	doc, err := spec.Complete()
	if err != nil {
		fmt.Println(err)
		return
	}

	op := doc.Paths["/api/v1/pets/{id}"].Get
	fmt.Println(op.Responses["200"].Ref)
	fmt.Println(op.Responses["404"].Description)
	fmt.Println(doc.Components.Names(openapi.KindSchema))
	// Output:
	// #/components/responses/Pet-Response
	// Client:
	// - 404: Pet not found
	// [Pet Owner PetArray Pet-Response ErrorBody]
}
