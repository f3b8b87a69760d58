package ir

// IsSubtype implements the lattice of spec.md §4.2: `uniform T <:
// varying T`; records subtype memberwise; function/BB/lambda types
// subtype contravariantly in parameters, covariantly in returns;
// pointer subtyping requires the same address space and pointee
// subtype. Grounded on original_source/src/shady/type.c's is_subtype.
func IsSubtype(a, b *Node) bool {
	if Same(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch a.Tag() {
	case TagQualifiedType:
		if b.Tag() != TagQualifiedType {
			return false
		}
		ap := a.Payload().(QualifiedTypePayload)
		bp := b.Payload().(QualifiedTypePayload)
		if bp.Uniform && !ap.Uniform {
			// varying cannot stand in for a uniform requirement
			return false
		}
		return IsSubtype(ap.Inner, bp.Inner)

	case TagPtrType:
		if b.Tag() != TagPtrType {
			return false
		}
		ap := a.Payload().(PtrTypePayload)
		bp := b.Payload().(PtrTypePayload)
		return ap.AddressSpace == bp.AddressSpace && IsSubtype(ap.Pointee, bp.Pointee)

	case TagArrayType:
		if b.Tag() != TagArrayType {
			return false
		}
		ap := a.Payload().(ArrayTypePayload)
		bp := b.Payload().(ArrayTypePayload)
		if ap.Sized != bp.Sized || (ap.Sized && ap.Size != bp.Size) {
			return false
		}
		return IsSubtype(ap.Element, bp.Element)

	case TagVectorType:
		if b.Tag() != TagVectorType {
			return false
		}
		ap := a.Payload().(VectorTypePayload)
		bp := b.Payload().(VectorTypePayload)
		return ap.Width == bp.Width && IsSubtype(ap.Element, bp.Element)

	case TagRecordType:
		if b.Tag() != TagRecordType {
			return false
		}
		ap := a.Payload().(RecordTypePayload)
		bp := b.Payload().(RecordTypePayload)
		if ap.Members.Count() != bp.Members.Count() {
			return false
		}
		for i := 0; i < ap.Members.Count(); i++ {
			if !IsSubtype(ap.Members.At(i), bp.Members.At(i)) {
				return false
			}
		}
		return true

	case TagFnType:
		if b.Tag() != TagFnType {
			return false
		}
		ap := a.Payload().(FnTypePayload)
		bp := b.Payload().(FnTypePayload)
		return subtypeParamsContravariant(ap.Params, bp.Params) &&
			subtypeListCovariant(ap.Returns, bp.Returns)

	case TagBBType:
		if b.Tag() != TagBBType {
			return false
		}
		ap := a.Payload().(BBTypePayload)
		bp := b.Payload().(BBTypePayload)
		return subtypeParamsContravariant(ap.Params, bp.Params)

	case TagLamType:
		if b.Tag() != TagLamType {
			return false
		}
		ap := a.Payload().(LamTypePayload)
		bp := b.Payload().(LamTypePayload)
		return subtypeParamsContravariant(ap.Params, bp.Params)

	default:
		return false
	}
}

// subtypeParamsContravariant checks a <: b for a function-like type's
// parameter lists: b's params must be subtypes of a's (the function
// accepting a is safe to use wherever one accepting b is expected, iff
// it can accept everything b's callers would pass).
func subtypeParamsContravariant(a, b Nodes) bool {
	if a.Count() != b.Count() {
		return false
	}
	for i := 0; i < a.Count(); i++ {
		if !IsSubtype(b.At(i), a.At(i)) {
			return false
		}
	}
	return true
}

func subtypeListCovariant(a, b Nodes) bool {
	if a.Count() != b.Count() {
		return false
	}
	for i := 0; i < a.Count(); i++ {
		if !IsSubtype(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}
