package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	CategoryID uint
	Search     string
	Limit      int
	Offset     int
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	UserID uint
	Status string
	Limit  int
	Offset int
}
