package ast

type Node interface {
	NodePos() Position
	NodeType() NodeType
}

func (u *Unit) NodePos() Position { return u.Pos }
func (*Unit) NodeType() NodeType  { return UNIT }

func (nb *NamespaceBlock) NodePos() Position { return nb.Pos }
func (*NamespaceBlock) NodeType() NodeType   { return NAMESPACE_BLOCK }

func (us *UseStmt) NodePos() Position { return us.Pos }
func (*UseStmt) NodeType() NodeType   { return USE_STMT }

func (uc *UseClause) NodePos() Position { return uc.Pos }
func (*UseClause) NodeType() NodeType   { return USE_STMT }

func (cs *ConstStmt) NodePos() Position { return cs.Pos }
func (*ConstStmt) NodeType() NodeType   { return CONST_STMT }

func (cd *ConstDecl) NodePos() Position { return cd.Pos }
func (*ConstDecl) NodeType() NodeType   { return CONST_STMT }

func (fd *FunctionDecl) NodePos() Position { return fd.Pos }
func (*FunctionDecl) NodeType() NodeType   { return FUNCTION_DECL }

func (p *Param) NodePos() Position { return p.Pos }
func (*Param) NodeType() NodeType  { return FUNCTION_DECL }

func (cd *ClassDecl) NodePos() Position { return cd.Pos }
func (*ClassDecl) NodeType() NodeType   { return CLASS_DECL }

func (id *InterfaceDecl) NodePos() Position { return id.Pos }
func (*InterfaceDecl) NodeType() NodeType   { return INTERFACE_DECL }

func (md *MethodDecl) NodePos() Position { return md.Pos }
func (*MethodDecl) NodeType() NodeType   { return METHOD_DECL }

func (pd *PropertyDecl) NodePos() Position { return pd.Pos }
func (*PropertyDecl) NodeType() NodeType   { return PROPERTY_DECL }

func (pv *PropertyVar) NodePos() Position { return pv.Pos }
func (*PropertyVar) NodeType() NodeType   { return PROPERTY_DECL }

func (cc *ClassConstDecl) NodePos() Position { return cc.Pos }
func (*ClassConstDecl) NodeType() NodeType   { return CLASS_CONST_DECL }

func (bs *BadStmt) NodePos() Position { return bs.Pos }
func (*BadStmt) NodeType() NodeType   { return BAD_STMT }

func (bs *BlockStmt) NodePos() Position { return bs.Pos }
func (*BlockStmt) NodeType() NodeType   { return BLOCK_STMT }

func (es *ExprStmt) NodePos() Position { return es.Pos }
func (*ExprStmt) NodeType() NodeType   { return EXPR_STMT }

func (es *EchoStmt) NodePos() Position { return es.Pos }
func (*EchoStmt) NodeType() NodeType   { return ECHO_STMT }

func (rs *ReturnStmt) NodePos() Position { return rs.Pos }
func (*ReturnStmt) NodeType() NodeType   { return RETURN_STMT }

func (is *IfStmt) NodePos() Position { return is.Pos }
func (*IfStmt) NodeType() NodeType   { return IF_STMT }

func (ei *ElseIf) NodePos() Position { return ei.Pos }
func (*ElseIf) NodeType() NodeType   { return IF_STMT }

func (ws *WhileStmt) NodePos() Position { return ws.Pos }
func (*WhileStmt) NodeType() NodeType   { return WHILE_STMT }

func (dw *DoWhileStmt) NodePos() Position { return dw.Pos }
func (*DoWhileStmt) NodeType() NodeType   { return DO_WHILE_STMT }

func (fs *ForStmt) NodePos() Position { return fs.Pos }
func (*ForStmt) NodeType() NodeType   { return FOR_STMT }

func (fs *ForeachStmt) NodePos() Position { return fs.Pos }
func (*ForeachStmt) NodeType() NodeType   { return FOREACH_STMT }

func (ss *SwitchStmt) NodePos() Position { return ss.Pos }
func (*SwitchStmt) NodeType() NodeType   { return SWITCH_STMT }

func (cc *CaseClause) NodePos() Position { return cc.Pos }
func (*CaseClause) NodeType() NodeType   { return SWITCH_STMT }

func (js *JumpStmt) NodePos() Position { return js.Pos }
func (*JumpStmt) NodeType() NodeType   { return JUMP_STMT }

func (gs *GlobalStmt) NodePos() Position { return gs.Pos }
func (*GlobalStmt) NodeType() NodeType   { return GLOBAL_STMT }

func (ss *StaticStmt) NodePos() Position { return ss.Pos }
func (*StaticStmt) NodeType() NodeType   { return STATIC_STMT }

func (sv *StaticVar) NodePos() Position { return sv.Pos }
func (*StaticVar) NodeType() NodeType   { return STATIC_STMT }

func (us *UnsetStmt) NodePos() Position { return us.Pos }
func (*UnsetStmt) NodeType() NodeType   { return UNSET_STMT }

func (ts *ThrowStmt) NodePos() Position { return ts.Pos }
func (*ThrowStmt) NodeType() NodeType   { return THROW_STMT }

func (ts *TryStmt) NodePos() Position { return ts.Pos }
func (*TryStmt) NodeType() NodeType   { return TRY_STMT }

func (cc *CatchClause) NodePos() Position { return cc.Pos }
func (*CatchClause) NodeType() NodeType   { return TRY_STMT }

func (be *BadExpr) NodePos() Position { return be.Pos }
func (*BadExpr) NodeType() NodeType   { return BAD_EXPR }

func (v *VarExpr) NodePos() Position { return v.Pos }
func (*VarExpr) NodeType() NodeType  { return VAR_EXPR }

func (dv *DynamicVarExpr) NodePos() Position { return dv.Pos }
func (*DynamicVarExpr) NodeType() NodeType   { return DYNAMIC_VAR_EXPR }

func (l *LiteralExpr) NodePos() Position { return l.Pos }
func (*LiteralExpr) NodeType() NodeType  { return LITERAL_EXPR }

func (is *InterpolatedStringExpr) NodePos() Position { return is.Pos }
func (*InterpolatedStringExpr) NodeType() NodeType   { return INTERPOLATED_STRING_EXPR }

func (a *ArrayExpr) NodePos() Position { return a.Pos }
func (*ArrayExpr) NodeType() NodeType  { return ARRAY_EXPR }

func (ai *ArrayItem) NodePos() Position { return ai.Pos }
func (*ArrayItem) NodeType() NodeType   { return ARRAY_EXPR }

func (n *NameExpr) NodePos() Position { return n.Pos }
func (*NameExpr) NodeType() NodeType  { return NAME_EXPR }

func (b *BinaryExpr) NodePos() Position { return b.Pos }
func (*BinaryExpr) NodeType() NodeType  { return BINARY_EXPR }

func (u *UnaryExpr) NodePos() Position { return u.Pos }
func (*UnaryExpr) NodeType() NodeType  { return UNARY_EXPR }

func (a *AssignExpr) NodePos() Position { return a.Pos }
func (*AssignExpr) NodeType() NodeType  { return ASSIGN_EXPR }

func (i *IndexExpr) NodePos() Position { return i.Pos }
func (*IndexExpr) NodeType() NodeType  { return INDEX_EXPR }

func (pf *PropertyFetchExpr) NodePos() Position { return pf.Pos }
func (*PropertyFetchExpr) NodeType() NodeType   { return PROPERTY_FETCH_EXPR }

func (mc *MethodCallExpr) NodePos() Position { return mc.Pos }
func (*MethodCallExpr) NodeType() NodeType   { return METHOD_CALL_EXPR }

func (sc *StaticCallExpr) NodePos() Position { return sc.Pos }
func (*StaticCallExpr) NodeType() NodeType   { return STATIC_CALL_EXPR }

func (sp *StaticPropExpr) NodePos() Position { return sp.Pos }
func (*StaticPropExpr) NodeType() NodeType   { return STATIC_PROP_EXPR }

func (cc *ClassConstExpr) NodePos() Position { return cc.Pos }
func (*ClassConstExpr) NodeType() NodeType   { return CLASS_CONST_EXPR }

func (c *CallExpr) NodePos() Position { return c.Pos }
func (*CallExpr) NodeType() NodeType  { return CALL_EXPR }

func (n *NewExpr) NodePos() Position { return n.Pos }
func (*NewExpr) NodeType() NodeType  { return NEW_EXPR }

func (c *ClosureExpr) NodePos() Position { return c.Pos }
func (*ClosureExpr) NodeType() NodeType  { return CLOSURE_EXPR }

func (cu *ClosureUse) NodePos() Position { return cu.Pos }
func (*ClosureUse) NodeType() NodeType   { return CLOSURE_EXPR }

func (af *ArrowFuncExpr) NodePos() Position { return af.Pos }
func (*ArrowFuncExpr) NodeType() NodeType   { return ARROW_FUNC_EXPR }

func (t *TernaryExpr) NodePos() Position { return t.Pos }
func (*TernaryExpr) NodeType() NodeType  { return TERNARY_EXPR }

func (i *IssetExpr) NodePos() Position { return i.Pos }
func (*IssetExpr) NodeType() NodeType  { return ISSET_EXPR }

func (e *EmptyExpr) NodePos() Position { return e.Pos }
func (*EmptyExpr) NodeType() NodeType  { return EMPTY_EXPR }

func (i *IncludeExpr) NodePos() Position { return i.Pos }
func (*IncludeExpr) NodeType() NodeType  { return INCLUDE_EXPR }

func (i *InstanceofExpr) NodePos() Position { return i.Pos }
func (*InstanceofExpr) NodeType() NodeType  { return INSTANCEOF_EXPR }

func (c *CastExpr) NodePos() Position { return c.Pos }
func (*CastExpr) NodeType() NodeType  { return CAST_EXPR }

func (e *ExitExpr) NodePos() Position { return e.Pos }
func (*ExitExpr) NodeType() NodeType  { return EXIT_EXPR }

func (c *CloneExpr) NodePos() Position { return c.Pos }
func (*CloneExpr) NodeType() NodeType  { return CLONE_EXPR }

func (p *PrintExpr) NodePos() Position { return p.Pos }
func (*PrintExpr) NodeType() NodeType  { return PRINT_EXPR }

func (s *SpreadExpr) NodePos() Position { return s.Pos }
func (*SpreadExpr) NodeType() NodeType  { return SPREAD_EXPR }

func (y *YieldExpr) NodePos() Position { return y.Pos }
func (*YieldExpr) NodeType() NodeType  { return YIELD_EXPR }
