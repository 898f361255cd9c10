package repo

import (
	"reflect"
	"testing"

	"github.com/LauraSouzaCastro/projeto13-batepapo-uol-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
)

func Test_VisibilityFilter(t *testing.T) {
	got := visibilityFilter("maria")
	want := bson.M{"$or": bson.A{
		bson.M{"from": "maria"},
		bson.M{"to": "maria"},
		bson.M{"type": domain.TypeChat},
		bson.M{"to": domain.Broadcast},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filter mismatch:\n got %#v\nwant %#v", got, want)
	}
}
