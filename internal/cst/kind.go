package cst

// Kind tags a CST node.
type Kind uint8

const (
	Invalid Kind = iota
	File

	// attributes and macros
	Attr       // #[...] or #![...]; content is opaque
	TokenTree  // delimited opaque token run, delimiters included
	MacroCall  // path ! [name] TokenTree
	VerusMacro // verus! { items }
	Visibility // pub, pub(crate), pub(in path)

	// items
	Fn
	ParamList
	Param
	SelfParam
	RetType
	GenericParams
	GenericParam
	WhereClause
	WherePred
	TypeBounds
	Clause // requires/ensures/invariant/... keyword plus expressions
	Struct
	FieldList
	Field
	TupleFieldList
	TupleField
	Enum
	VariantList
	Variant
	Impl
	Trait
	AssocItems
	TypeAlias
	Const // const and static
	Mod
	ItemList
	Use
	UseTree
	UseTreeList
	ExternCrate
	ExternBlock
	BroadcastUse
	BroadcastGroup

	// paths and types
	Path
	QSelf // <T as Trait>
	GenericArgs
	ParenArgs // Fn(A, B) -> C sugar
	PathType
	RefType
	PtrType
	TupleType
	ArrayType
	SliceType
	FnPtrType
	ImplType
	DynType
	NeverType
	InferType

	// patterns
	IdentPat
	WildPat
	RestPat
	LitPat
	RangePat
	TuplePat
	TupleStructPat
	StructPat
	StructPatField
	PathPat
	RefPat
	OrPat
	SlicePat

	// statements
	Block
	LetStmt
	ExprStmt
	EmptyStmt

	// expressions
	LitExpr
	PathExpr
	ParenExpr
	TupleExpr
	ArrayExpr
	BinExpr
	PrefixExpr
	CastExpr
	IsExpr
	MatchesExpr
	CallExpr
	ArgList
	MethodCall
	FieldExpr
	IndexExpr
	TryExpr
	ViewExpr // x@
	RangeExpr
	AssignExpr
	ClosureExpr
	ClosureParams
	BlockExpr // label, unsafe, async, const or plain wrapper around Block
	IfExpr
	LetExpr // let P = e inside conditions
	MatchExpr
	MatchArm
	WhileExpr
	LoopExpr
	ForExpr
	BreakExpr
	ContinueExpr
	ReturnExpr
	StructLit
	StructLitField
	StructLitBase

	// verification
	QuantExpr    // forall|..| e, exists|..| e, choose|..| e
	AssertExpr   // assert(e) [by ...], assume(e)
	AssertForall // assert forall|..| p implies q by { }
	ProofBlock   // proof { }
	BulletExpr   // &&& a &&& b
	ExprAttr     // #[trigger] e
)

var kindNames = map[Kind]string{
	Invalid: "Invalid", File: "File",
	Attr: "Attr", TokenTree: "TokenTree", MacroCall: "MacroCall", VerusMacro: "VerusMacro", Visibility: "Visibility",
	Fn: "Fn", ParamList: "ParamList", Param: "Param", SelfParam: "SelfParam", RetType: "RetType",
	GenericParams: "GenericParams", GenericParam: "GenericParam", WhereClause: "WhereClause", WherePred: "WherePred",
	TypeBounds: "TypeBounds", Clause: "Clause", Struct: "Struct", FieldList: "FieldList", Field: "Field",
	TupleFieldList: "TupleFieldList", TupleField: "TupleField", Enum: "Enum", VariantList: "VariantList",
	Variant: "Variant", Impl: "Impl", Trait: "Trait", AssocItems: "AssocItems", TypeAlias: "TypeAlias",
	Const: "Const", Mod: "Mod", ItemList: "ItemList", Use: "Use", UseTree: "UseTree", UseTreeList: "UseTreeList",
	ExternCrate: "ExternCrate", ExternBlock: "ExternBlock", BroadcastUse: "BroadcastUse", BroadcastGroup: "BroadcastGroup",
	Path: "Path", QSelf: "QSelf", GenericArgs: "GenericArgs", ParenArgs: "ParenArgs", PathType: "PathType",
	RefType: "RefType", PtrType: "PtrType", TupleType: "TupleType", ArrayType: "ArrayType", SliceType: "SliceType",
	FnPtrType: "FnPtrType", ImplType: "ImplType", DynType: "DynType", NeverType: "NeverType", InferType: "InferType",
	IdentPat: "IdentPat", WildPat: "WildPat", RestPat: "RestPat", LitPat: "LitPat", RangePat: "RangePat",
	TuplePat: "TuplePat", TupleStructPat: "TupleStructPat", StructPat: "StructPat", StructPatField: "StructPatField",
	PathPat: "PathPat", RefPat: "RefPat", OrPat: "OrPat", SlicePat: "SlicePat",
	Block: "Block", LetStmt: "LetStmt", ExprStmt: "ExprStmt", EmptyStmt: "EmptyStmt",
	LitExpr: "LitExpr", PathExpr: "PathExpr", ParenExpr: "ParenExpr", TupleExpr: "TupleExpr", ArrayExpr: "ArrayExpr",
	BinExpr: "BinExpr", PrefixExpr: "PrefixExpr", CastExpr: "CastExpr", IsExpr: "IsExpr", MatchesExpr: "MatchesExpr",
	CallExpr: "CallExpr", ArgList: "ArgList", MethodCall: "MethodCall", FieldExpr: "FieldExpr", IndexExpr: "IndexExpr",
	TryExpr: "TryExpr", ViewExpr: "ViewExpr", RangeExpr: "RangeExpr", AssignExpr: "AssignExpr",
	ClosureExpr: "ClosureExpr", ClosureParams: "ClosureParams", BlockExpr: "BlockExpr", IfExpr: "IfExpr",
	LetExpr: "LetExpr", MatchExpr: "MatchExpr", MatchArm: "MatchArm", WhileExpr: "WhileExpr", LoopExpr: "LoopExpr",
	ForExpr: "ForExpr", BreakExpr: "BreakExpr", ContinueExpr: "ContinueExpr", ReturnExpr: "ReturnExpr",
	StructLit: "StructLit", StructLitField: "StructLitField", StructLitBase: "StructLitBase",
	QuantExpr: "QuantExpr", AssertExpr: "AssertExpr", AssertForall: "AssertForall", ProofBlock: "ProofBlock",
	BulletExpr: "BulletExpr", ExprAttr: "ExprAttr",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// IsItem reports kinds that appear in item lists.
func (k Kind) IsItem() bool {
	switch k {
	case Fn, Struct, Enum, Impl, Trait, TypeAlias, Const, Mod, Use, ExternCrate, ExternBlock,
		BroadcastUse, BroadcastGroup, MacroCall, VerusMacro:
		return true
	}
	return false
}

// IsVerification reports node kinds that exist only in the verification dialect.
func (k Kind) IsVerification() bool {
	switch k {
	case Clause, QuantExpr, AssertExpr, AssertForall, ProofBlock, BulletExpr, ExprAttr, ViewExpr, VerusMacro,
		IsExpr, MatchesExpr:
		return true
	}
	return false
}
