package domain

// ResourceType identifies a guarded domain collection. The set is closed:
// ownership lookups resolve through a static registry keyed by these values,
// never by interpolating request input into a collection name.
type ResourceType string

const (
	ResourceOrders    ResourceType = "orders"
	ResourceCustomers ResourceType = "customers"
	ResourceSuppliers ResourceType = "suppliers"
)

// KnownResourceTypes lists every registrable resource type.
func KnownResourceTypes() []ResourceType {
	return []ResourceType{ResourceOrders, ResourceCustomers, ResourceSuppliers}
}

// Ownership holds the three owner-like references a resource may carry.
// Any one of them matching the principal grants ownership.
type Ownership struct {
	CreatedBy  string `bson:"created_by"`
	AssignedTo string `bson:"assigned_to"`
	SalesRep   string `bson:"sales_rep"`
}

// OwnedBy reports whether userID matches any owner-like field. Empty fields
// never match, so an anonymous or partially-populated resource grants nothing.
func (o Ownership) OwnedBy(userID string) bool {
	if userID == "" {
		return false
	}
	return o.CreatedBy == userID || o.AssignedTo == userID || o.SalesRep == userID
}
