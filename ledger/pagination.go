package ledger

// Pagination 分页信息
type Pagination struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
	Offset     int
	HasPrev    bool
	HasNext    bool
}

// Paginate 计算分页信息，页码小于 1 时按第 1 页处理，
// 超过末页时最多停在末页之后的一页（空页）
func Paginate(page, size int, total int64) Pagination {
	if size < 1 {
		size = defaultPageSize
	}
	if total < 0 {
		total = 0
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if page < 1 {
		page = 1
	}
	if limit := max(pages, 1) + 1; page > limit {
		page = limit
	}
	offset := (page - 1) * size
	return Pagination{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
		Offset:     offset,
		HasPrev:    page > 1,
		HasNext:    int64(offset+size) < total,
	}
}

// PrevPage 上一页页码
func (p Pagination) PrevPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// NextPage 下一页页码
func (p Pagination) NextPage() int {
	return p.Page + 1
}
