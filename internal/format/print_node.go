package format

import (
	"vfmt/internal/cst"
	"vfmt/internal/doc"
)

// node dispatches on the node kind.
func (p *printer) node(n *cst.Node) *doc.Doc {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case cst.File:
		return p.file(n)

	case cst.Attr:
		return p.attr(n)
	case cst.TokenTree:
		return p.tokenTree(n, false)
	case cst.MacroCall:
		return p.macroCall(n)
	case cst.VerusMacro:
		return p.verusMacro(n)
	case cst.Visibility:
		return p.visibility(n)

	case cst.Fn:
		return p.fn(n)
	case cst.Struct:
		return p.structItem(n)
	case cst.Enum:
		return p.enumItem(n)
	case cst.Impl:
		return p.implItem(n)
	case cst.Trait:
		return p.traitItem(n)
	case cst.TypeAlias:
		return p.typeAlias(n)
	case cst.Const:
		return p.constItem(n)
	case cst.Mod:
		return p.modItem(n)
	case cst.Use:
		return p.useItem(n)
	case cst.UseTree:
		return p.useTree(n)
	case cst.UseTreeList:
		return p.delimited(n.Children, listSoft, listOpts{})
	case cst.ExternCrate:
		return p.externCrate(n)
	case cst.ExternBlock:
		return p.externBlock(n)
	case cst.BroadcastUse:
		return p.broadcastUse(n)
	case cst.BroadcastGroup:
		return p.broadcastGroup(n)
	case cst.AssocItems, cst.ItemList:
		return p.itemList(n)

	case cst.ParamList, cst.GenericParams, cst.ArgList, cst.SlicePat:
		return p.delimited(n.Children, listSoft, listOpts{})
	case cst.TupleFieldList, cst.TupleType, cst.TuplePat, cst.TupleExpr:
		return p.delimited(n.Children, listSoft, listOpts{keepOne: true})
	case cst.Param:
		return p.param(n)
	case cst.SelfParam:
		return p.selfParam(n)
	case cst.RetType:
		return p.retType(n)
	case cst.GenericParam:
		return p.genericParam(n)
	case cst.GenericArgs:
		return p.genericArgs(n)
	case cst.WhereClause:
		return p.where(n, true)
	case cst.WherePred:
		return p.wherePred(n)
	case cst.TypeBounds:
		return p.typeBounds(n)
	case cst.Clause:
		return p.clause(n)
	case cst.FieldList:
		return p.fieldList(n, listBroken)
	case cst.Field:
		return p.field(n)
	case cst.TupleField:
		return p.tupleField(n)
	case cst.VariantList:
		return p.delimited(n.Children, listBroken, listOpts{})
	case cst.Variant:
		return p.variant(n)

	case cst.QSelf:
		return p.qself(n)
	case cst.ParenArgs:
		return p.parenArgs(n)
	case cst.PathType:
		return p.pathType(n)
	case cst.RefType, cst.RefPat:
		return p.refType(n)
	case cst.PtrType:
		return p.ptrType(n)
	case cst.ArrayType:
		return p.arrayType(n)
	case cst.FnPtrType:
		return p.fnPtrType(n)
	case cst.ImplType, cst.DynType:
		return p.implType(n)

	case cst.IdentPat:
		return p.identPat(n)
	case cst.TupleStructPat:
		return p.tupleStructPat(n)
	case cst.StructPat:
		return p.structPat(n)
	case cst.StructPatField, cst.StructLitField:
		return p.labeled(n)
	case cst.OrPat:
		return p.orPat(n)

	case cst.Block:
		return p.block(n)
	case cst.LetStmt:
		return p.letStmt(n)
	case cst.ExprStmt:
		return p.exprStmt(n)

	case cst.BinExpr:
		return p.binExpr(n)
	case cst.AssignExpr, cst.CastExpr, cst.IsExpr, cst.MatchesExpr, cst.LetExpr,
		cst.ReturnExpr, cst.BreakExpr, cst.ContinueExpr:
		return p.spaced(n.Children)
	case cst.PrefixExpr:
		return p.prefixExpr(n)
	case cst.ArrayExpr:
		return p.arrayExpr(n)
	case cst.ClosureExpr:
		return p.closureExpr(n)
	case cst.ClosureParams:
		return p.closureParams(n)
	case cst.BlockExpr:
		return p.blockExpr(n)
	case cst.IfExpr:
		return p.ifExpr(n)
	case cst.MatchExpr:
		return p.matchExpr(n)
	case cst.MatchArm:
		return p.matchArm(n)
	case cst.WhileExpr, cst.LoopExpr, cst.ForExpr:
		return p.loopExpr(n)
	case cst.StructLit:
		return p.structLit(n)

	case cst.QuantExpr:
		return p.quantExpr(n)
	case cst.AssertExpr:
		return p.assertExpr(n)
	case cst.AssertForall:
		return p.assertForall(n)
	case cst.ProofBlock:
		return doc.Concat(p.tok(n.Children[0].Tok), space, p.block(n.Children[1].Node))
	case cst.BulletExpr:
		return p.bulletExpr(n)
	case cst.ExprAttr:
		return p.exprAttr(n)
	}
	// paths, literals, leaf types and patterns, postfix expressions: the
	// children are printed next to each other
	return p.glue(n.Children)
}
