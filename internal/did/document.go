package did

import "strings"

// DocumentBuilder assembles a DIDDocument incrementally, the same way
// DefaultDocumentHelper mutates an existing document, but starting from
// nothing but a DID string. Callers use it to produce the document that
// they pass to the webvh log engine's Create/Update builders as the
// `state` carried by a log entry.
type DocumentBuilder struct {
	doc    *DIDDocument
	helper DocumentHelper
	err    error
}

// NewDocumentBuilder starts a builder for the document identified by did.
// The context defaults to the DID v1 context; callers needing the
// security-suite context append it via WithContext.
func NewDocumentBuilder(did string) *DocumentBuilder {
	return &DocumentBuilder{
		doc: &DIDDocument{
			Context: []string{"https://www.w3.org/ns/did/v1"},
			ID:      did,
		},
		helper: NewDocumentHelper(),
	}
}

// WithContext appends additional @context URIs after the DID v1 context.
func (b *DocumentBuilder) WithContext(uris ...string) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	b.doc.Context = append(b.doc.Context, uris...)
	return b
}

// WithAlsoKnownAs sets the alsoKnownAs field.
func (b *DocumentBuilder) WithAlsoKnownAs(aka ...string) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	b.doc.AlsoKnownAs = aka
	return b
}

// WithController sets the controller field.
func (b *DocumentBuilder) WithController(controllers ...string) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	b.doc.Controller = controllers
	return b
}

// AddVerificationMethod adds vm to the document and, for each purpose,
// registers vm.ID in the corresponding relation set.
func (b *DocumentBuilder) AddVerificationMethod(vm *VerificationMethod, purposes ...VerificationRelationship) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	if err := b.helper.AddVerificationMethod(b.doc, vm, purposes); err != nil {
		b.err = err
	}
	return b
}

// AddService adds a service endpoint to the document.
func (b *DocumentBuilder) AddService(svc *Service) *DocumentBuilder {
	if b.err != nil {
		return b
	}
	if err := b.helper.AddService(b.doc, svc); err != nil {
		b.err = err
	}
	return b
}

// Build returns the assembled document, or the first error encountered
// while building it.
func (b *DocumentBuilder) Build() (*DIDDocument, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.doc, nil
}

// SubstitutePlaceholder returns a copy of doc with every occurrence of
// placeholder (in the document ID, alsoKnownAs and controller entries,
// verification method ids and controllers, service ids and string
// endpoints, and string references in the relation sets) replaced by
// value. It is the Go-native form of the webvh SCID
// engine's "substitute {SCID} everywhere" step, kept here because it
// operates purely on the document shape, not on log/SCID semantics.
func SubstitutePlaceholder(doc *DIDDocument, placeholder, value string) *DIDDocument {
	if doc == nil {
		return nil
	}
	out := *doc
	out.ID = strings.ReplaceAll(doc.ID, placeholder, value)

	if doc.AlsoKnownAs != nil {
		aka := make([]string, len(doc.AlsoKnownAs))
		for i, a := range doc.AlsoKnownAs {
			aka[i] = strings.ReplaceAll(a, placeholder, value)
		}
		out.AlsoKnownAs = aka
	}

	if doc.Controller != nil {
		ctl := make([]string, len(doc.Controller))
		for i, c := range doc.Controller {
			ctl[i] = strings.ReplaceAll(c, placeholder, value)
		}
		out.Controller = ctl
	}

	if doc.VerificationMethod != nil {
		vms := make([]VerificationMethod, len(doc.VerificationMethod))
		for i, vm := range doc.VerificationMethod {
			vm.ID = strings.ReplaceAll(vm.ID, placeholder, value)
			vm.Controller = strings.ReplaceAll(vm.Controller, placeholder, value)
			vms[i] = vm
		}
		out.VerificationMethod = vms
	}

	if doc.Service != nil {
		svcs := make([]Service, len(doc.Service))
		for i, svc := range doc.Service {
			svc.ID = strings.ReplaceAll(svc.ID, placeholder, value)
			if s, ok := svc.ServiceEndpoint.(string); ok {
				svc.ServiceEndpoint = strings.ReplaceAll(s, placeholder, value)
			}
			svcs[i] = svc
		}
		out.Service = svcs
	}

	out.Authentication = substituteRelation(doc.Authentication, placeholder, value)
	out.AssertionMethod = substituteRelation(doc.AssertionMethod, placeholder, value)
	out.KeyAgreement = substituteRelation(doc.KeyAgreement, placeholder, value)
	out.CapabilityInvocation = substituteRelation(doc.CapabilityInvocation, placeholder, value)
	out.CapabilityDelegation = substituteRelation(doc.CapabilityDelegation, placeholder, value)

	return &out
}

func substituteRelation(refs []interface{}, placeholder, value string) []interface{} {
	if refs == nil {
		return nil
	}
	out := make([]interface{}, len(refs))
	for i, ref := range refs {
		if s, ok := ref.(string); ok {
			out[i] = strings.ReplaceAll(s, placeholder, value)
			continue
		}
		out[i] = ref
	}
	return out
}

// RelationReferenceIDs returns the verificationMethod.id named by each
// entry of a relation set — a bare reference string as-is, or the `id`
// of an inline verification method. Used to check the invariant that
// every relation entry names an existing verificationMethod.id or
// resolves externally.
func RelationReferenceIDs(refs []interface{}) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		switch r := ref.(type) {
		case string:
			ids = append(ids, r)
		case map[string]interface{}:
			if id, ok := r["id"].(string); ok {
				ids = append(ids, id)
			}
		case VerificationMethod:
			ids = append(ids, r.ID)
		}
	}
	return ids
}
