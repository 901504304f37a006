// Package testutil 用例单元测试的内存仓储假实现
//
// 设计说明:
//  1. 行为与mysql实现对齐:找不到记录时返回的错误(或nil,nil)保持一致,
//     用例的错误分支在单元测试里就能覆盖
//  2. 不做并发保护,单元测试串行执行
//  3. TxManager直接执行回调:用例的事务边界由集成测试验证
package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/notification"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// TxManager 直接执行回调的事务管理器
type TxManager struct{}

func (TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Notifier 记录通知调用的假实现
type Notifier struct {
	HoldReadyCalls   []NotifyCall
	HoldExpiredCalls []NotifyCall
	FineCalls        []FineNotifyCall
}

// NotifyCall 预约通知调用记录
type NotifyCall struct {
	MemberID uint
	BookID   uint
	Title    string
}

// FineNotifyCall 罚款通知调用记录
type FineNotifyCall struct {
	MemberID uint
	Amount   float64
	Reason   string
}

func (n *Notifier) HoldReady(ctx context.Context, memberID, bookID uint, title string) error {
	n.HoldReadyCalls = append(n.HoldReadyCalls, NotifyCall{MemberID: memberID, BookID: bookID, Title: title})
	return nil
}

func (n *Notifier) HoldExpired(ctx context.Context, memberID, bookID uint, title string) error {
	n.HoldExpiredCalls = append(n.HoldExpiredCalls, NotifyCall{MemberID: memberID, BookID: bookID, Title: title})
	return nil
}

func (n *Notifier) FineAssessed(ctx context.Context, memberID uint, amount float64, reason string) error {
	n.FineCalls = append(n.FineCalls, FineNotifyCall{MemberID: memberID, Amount: amount, Reason: reason})
	return nil
}

// ============================================================
// 图书仓储
// ============================================================

// BookRepo 内存图书仓储
type BookRepo struct {
	Books  map[uint]*book.Book
	Items  map[string]*book.BookItem
	nextID uint
}

// NewBookRepo 创建内存图书仓储
func NewBookRepo() *BookRepo {
	return &BookRepo{
		Books: make(map[uint]*book.Book),
		Items: make(map[string]*book.BookItem),
	}
}

// AddBook 预置书目(测试夹具)
func (r *BookRepo) AddBook(b *book.Book) *book.Book {
	if b.ID == 0 {
		r.nextID++
		b.ID = r.nextID
	}
	r.Books[b.ID] = b
	return b
}

// AddItem 预置副本(测试夹具)
func (r *BookRepo) AddItem(item *book.BookItem) *book.BookItem {
	r.Items[item.Barcode] = item
	return item
}

func (r *BookRepo) CreateBook(ctx context.Context, b *book.Book) error {
	r.AddBook(b)
	return nil
}

func (r *BookRepo) FindBookByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.Books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *BookRepo) FindBookByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	for _, b := range r.Books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *BookRepo) ListBooks(ctx context.Context, page, pageSize int) ([]*book.Book, int64, error) {
	ids := make([]uint, 0, len(r.Books))
	for id := range r.Books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var result []*book.Book
	start := (page - 1) * pageSize
	for i := start; i < len(ids) && i < start+pageSize; i++ {
		result = append(result, r.Books[ids[i]])
	}
	return result, int64(len(ids)), nil
}

func (r *BookRepo) UpdateBook(ctx context.Context, b *book.Book) error {
	r.Books[b.ID] = b
	return nil
}

func (r *BookRepo) DeleteBook(ctx context.Context, id uint) error {
	delete(r.Books, id)
	return nil
}

func (r *BookRepo) CreateItem(ctx context.Context, item *book.BookItem) error {
	r.Items[item.Barcode] = item
	return nil
}

func (r *BookRepo) FindItemByBarcode(ctx context.Context, barcode string) (*book.BookItem, error) {
	item, ok := r.Items[barcode]
	if !ok {
		return nil, book.ErrItemNotFound
	}
	return item, nil
}

func (r *BookRepo) LockItemByBarcode(ctx context.Context, barcode string) (*book.BookItem, error) {
	return r.FindItemByBarcode(ctx, barcode)
}

func (r *BookRepo) ListItemsByBook(ctx context.Context, bookID uint) ([]*book.BookItem, error) {
	var result []*book.BookItem
	for _, item := range r.Items {
		if item.BookID == bookID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Barcode < result[j].Barcode })
	return result, nil
}

func (r *BookRepo) CountItemsByBook(ctx context.Context, bookID uint) (int64, error) {
	var n int64
	for _, item := range r.Items {
		if item.BookID == bookID {
			n++
		}
	}
	return n, nil
}

func (r *BookRepo) CountAvailableItems(ctx context.Context, bookID uint) (int64, error) {
	var n int64
	for _, item := range r.Items {
		if item.BookID == bookID && item.Status == book.ItemAvailable {
			n++
		}
	}
	return n, nil
}

func (r *BookRepo) FindReservedItemByBook(ctx context.Context, bookID uint) (*book.BookItem, error) {
	for _, item := range r.Items {
		if item.BookID == bookID && item.Status == book.ItemReserved {
			return item, nil
		}
	}
	return nil, nil
}

func (r *BookRepo) UpdateItem(ctx context.Context, item *book.BookItem) error {
	r.Items[item.Barcode] = item
	return nil
}

func (r *BookRepo) DeleteItem(ctx context.Context, barcode string) error {
	delete(r.Items, barcode)
	return nil
}

// ============================================================
// 借阅仓储
// ============================================================

// LoanRepo 内存借阅仓储
type LoanRepo struct {
	Loans  map[uint]*loan.Loan
	Books  *BookRepo // 条码→书目解析需要副本信息
	nextID uint
}

// NewLoanRepo 创建内存借阅仓储
// books用于HasActiveLoanForBook的条码→书目解析
func NewLoanRepo(books *BookRepo) *LoanRepo {
	return &LoanRepo{Loans: make(map[uint]*loan.Loan), Books: books}
}

// AddLoan 预置借阅(测试夹具)
func (r *LoanRepo) AddLoan(l *loan.Loan) *loan.Loan {
	if l.ID == 0 {
		r.nextID++
		l.ID = r.nextID
	}
	r.Loans[l.ID] = l
	return l
}

func (r *LoanRepo) Create(ctx context.Context, l *loan.Loan) error {
	r.AddLoan(l)
	return nil
}

func (r *LoanRepo) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	l, ok := r.Loans[id]
	if !ok {
		return nil, loan.ErrLoanNotFound
	}
	return l, nil
}

func (r *LoanRepo) FindActiveByBarcode(ctx context.Context, barcode string) (*loan.Loan, error) {
	for _, l := range r.Loans {
		if l.BookItemBarcode == barcode && l.IsActive() {
			return l, nil
		}
	}
	return nil, loan.ErrNoActiveLoan
}

func (r *LoanRepo) CountActiveByMember(ctx context.Context, memberID uint) (int64, error) {
	var n int64
	for _, l := range r.Loans {
		if l.MemberID == memberID && l.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *LoanRepo) HasActiveLoanForBook(ctx context.Context, memberID, bookID uint) (bool, error) {
	for _, l := range r.Loans {
		if l.MemberID != memberID || !l.IsActive() {
			continue
		}
		item, ok := r.Books.Items[l.BookItemBarcode]
		if ok && item.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

func (r *LoanRepo) ListActiveOverdue(ctx context.Context, before time.Time) ([]*loan.Loan, error) {
	var result []*loan.Loan
	for _, l := range r.Loans {
		if l.IsActive() && l.DueDate.Before(before) {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *LoanRepo) ListByMember(ctx context.Context, memberID uint, status loan.Status) ([]*loan.Loan, error) {
	var result []*loan.Loan
	for _, l := range r.Loans {
		if l.MemberID != memberID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *LoanRepo) ListByBarcode(ctx context.Context, barcode string) ([]*loan.Loan, error) {
	var result []*loan.Loan
	for _, l := range r.Loans {
		if l.BookItemBarcode == barcode {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *LoanRepo) Update(ctx context.Context, l *loan.Loan) error {
	r.Loans[l.ID] = l
	return nil
}

// ============================================================
// 预约仓储
// ============================================================

// ReservationRepo 内存预约仓储
type ReservationRepo struct {
	Reservations map[uint]*reservation.Reservation
	nextID       uint
}

// NewReservationRepo 创建内存预约仓储
func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{Reservations: make(map[uint]*reservation.Reservation)}
}

// AddReservation 预置预约(测试夹具)
func (r *ReservationRepo) AddReservation(res *reservation.Reservation) *reservation.Reservation {
	if res.ID == 0 {
		r.nextID++
		res.ID = r.nextID
	}
	r.Reservations[res.ID] = res
	return res
}

func (r *ReservationRepo) Create(ctx context.Context, res *reservation.Reservation) error {
	r.AddReservation(res)
	return nil
}

func (r *ReservationRepo) FindByID(ctx context.Context, id uint) (*reservation.Reservation, error) {
	res, ok := r.Reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return res, nil
}

func (r *ReservationRepo) FindActiveByBookAndMember(ctx context.Context, bookID, memberID uint) (*reservation.Reservation, error) {
	for _, res := range r.Reservations {
		if res.BookID == bookID && res.MemberID == memberID &&
			(res.Status == reservation.StatusPending || res.Status == reservation.StatusFulfilled) {
			return res, nil
		}
	}
	return nil, nil
}

func (r *ReservationRepo) FindFulfilledByBookAndMember(ctx context.Context, bookID, memberID uint) (*reservation.Reservation, error) {
	for _, res := range r.Reservations {
		if res.BookID == bookID && res.MemberID == memberID && res.Status == reservation.StatusFulfilled {
			return res, nil
		}
	}
	return nil, nil
}

func (r *ReservationRepo) FindNextPending(ctx context.Context, bookID uint) (*reservation.Reservation, error) {
	var next *reservation.Reservation
	for _, res := range r.Reservations {
		if res.BookID != bookID || res.Status != reservation.StatusPending {
			continue
		}
		if next == nil || res.ReservationDate.Before(next.ReservationDate) ||
			(res.ReservationDate.Equal(next.ReservationDate) && res.ID < next.ID) {
			next = res
		}
	}
	return next, nil
}

func (r *ReservationRepo) CountPendingBefore(ctx context.Context, bookID uint, t time.Time) (int64, error) {
	var n int64
	for _, res := range r.Reservations {
		if res.BookID == bookID && res.Status == reservation.StatusPending && res.ReservationDate.Before(t) {
			n++
		}
	}
	return n, nil
}

func (r *ReservationRepo) CountPendingByBook(ctx context.Context, bookID uint) (int64, error) {
	var n int64
	for _, res := range r.Reservations {
		if res.BookID == bookID && res.Status == reservation.StatusPending {
			n++
		}
	}
	return n, nil
}

func (r *ReservationRepo) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var n int64
	for _, res := range r.Reservations {
		if res.BookID == bookID &&
			(res.Status == reservation.StatusPending || res.Status == reservation.StatusFulfilled) {
			n++
		}
	}
	return n, nil
}

func (r *ReservationRepo) ListStaleFulfilled(ctx context.Context, before time.Time) ([]*reservation.Reservation, error) {
	var result []*reservation.Reservation
	for _, res := range r.Reservations {
		if res.Status == reservation.StatusFulfilled && res.FulfilledAt != nil && res.FulfilledAt.Before(before) {
			result = append(result, res)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *ReservationRepo) ListActiveByMember(ctx context.Context, memberID uint) ([]*reservation.Reservation, error) {
	var result []*reservation.Reservation
	for _, res := range r.Reservations {
		if res.MemberID == memberID &&
			(res.Status == reservation.StatusPending || res.Status == reservation.StatusFulfilled) {
			result = append(result, res)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *ReservationRepo) Update(ctx context.Context, res *reservation.Reservation) error {
	r.Reservations[res.ID] = res
	return nil
}

// ============================================================
// 罚款仓储
// ============================================================

// FineRepo 内存罚款仓储
type FineRepo struct {
	Fines  map[uint]*fine.Fine
	nextID uint
}

// NewFineRepo 创建内存罚款仓储
func NewFineRepo() *FineRepo {
	return &FineRepo{Fines: make(map[uint]*fine.Fine)}
}

// AddFine 预置罚款(测试夹具)
func (r *FineRepo) AddFine(f *fine.Fine) *fine.Fine {
	if f.ID == 0 {
		r.nextID++
		f.ID = r.nextID
	}
	r.Fines[f.ID] = f
	return f
}

func (r *FineRepo) Create(ctx context.Context, f *fine.Fine) error {
	r.AddFine(f)
	return nil
}

func (r *FineRepo) FindByID(ctx context.Context, id uint) (*fine.Fine, error) {
	f, ok := r.Fines[id]
	if !ok {
		return nil, fine.ErrFineNotFound
	}
	return f, nil
}

func (r *FineRepo) FindOverdueByLoan(ctx context.Context, loanID uint) (*fine.Fine, error) {
	for _, f := range r.Fines {
		if f.LoanID == loanID && f.Reason == fine.ReasonOverdue {
			return f, nil
		}
	}
	return nil, nil
}

func (r *FineRepo) SumOutstandingByMember(ctx context.Context, memberID uint) (float64, error) {
	var sum float64
	for _, f := range r.Fines {
		if f.MemberID == memberID && f.Status != fine.StatusPaid {
			sum += f.Remaining()
		}
	}
	return sum, nil
}

func (r *FineRepo) CountUnsettledByMember(ctx context.Context, memberID uint) (int64, error) {
	var n int64
	for _, f := range r.Fines {
		if f.MemberID == memberID && f.Status != fine.StatusPaid {
			n++
		}
	}
	return n, nil
}

func (r *FineRepo) ListByMember(ctx context.Context, memberID uint, includeSettled bool) ([]*fine.Fine, error) {
	var result []*fine.Fine
	for _, f := range r.Fines {
		if f.MemberID != memberID {
			continue
		}
		if !includeSettled && f.Status == fine.StatusPaid {
			continue
		}
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *FineRepo) Update(ctx context.Context, f *fine.Fine) error {
	r.Fines[f.ID] = f
	return nil
}

// ============================================================
// 读者仓储
// ============================================================

// MemberRepo 内存读者仓储
type MemberRepo struct {
	Members    map[uint]*member.Member
	Librarians map[uint]*member.Librarian
	nextID     uint
}

// NewMemberRepo 创建内存读者仓储
func NewMemberRepo() *MemberRepo {
	return &MemberRepo{
		Members:    make(map[uint]*member.Member),
		Librarians: make(map[uint]*member.Librarian),
	}
}

// AddMember 预置读者(测试夹具)
func (r *MemberRepo) AddMember(m *member.Member) *member.Member {
	if m.ID == 0 {
		r.nextID++
		m.ID = r.nextID
	}
	r.Members[m.ID] = m
	return m
}

func (r *MemberRepo) CreateMember(ctx context.Context, m *member.Member) error {
	r.AddMember(m)
	return nil
}

func (r *MemberRepo) FindMemberByID(ctx context.Context, id uint) (*member.Member, error) {
	m, ok := r.Members[id]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	return m, nil
}

func (r *MemberRepo) FindMemberByEmail(ctx context.Context, email string) (*member.Member, error) {
	for _, m := range r.Members {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, member.ErrMemberNotFound
}

func (r *MemberRepo) SearchMembers(ctx context.Context, query string) ([]*member.Member, error) {
	q := strings.ToLower(query)
	var result []*member.Member
	for _, m := range r.Members {
		if strings.Contains(strings.ToLower(m.FullName), q) ||
			strings.Contains(strings.ToLower(m.Email), q) ||
			strings.Contains(strings.ToLower(m.PhoneNumber), q) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemberRepo) UpdateMember(ctx context.Context, m *member.Member) error {
	r.Members[m.ID] = m
	return nil
}

func (r *MemberRepo) DeleteMember(ctx context.Context, id uint) error {
	delete(r.Members, id)
	return nil
}

func (r *MemberRepo) CreateLibrarian(ctx context.Context, l *member.Librarian) error {
	if l.ID == 0 {
		r.nextID++
		l.ID = r.nextID
	}
	r.Librarians[l.ID] = l
	return nil
}

func (r *MemberRepo) FindLibrarianByID(ctx context.Context, id uint) (*member.Librarian, error) {
	l, ok := r.Librarians[id]
	if !ok {
		return nil, member.ErrLibrarianNotFound
	}
	return l, nil
}

func (r *MemberRepo) FindLibrarianByEmail(ctx context.Context, email string) (*member.Librarian, error) {
	for _, l := range r.Librarians {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, member.ErrLibrarianNotFound
}

func (r *MemberRepo) ListLibrarians(ctx context.Context) ([]*member.Librarian, error) {
	var result []*member.Librarian
	for _, l := range r.Librarians {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemberRepo) DeleteLibrarian(ctx context.Context, id uint) error {
	delete(r.Librarians, id)
	return nil
}

// ============================================================
// 通知仓储
// ============================================================

// NotificationRepo 内存通知仓储
type NotificationRepo struct {
	Notifications map[uint]*notification.Notification
	nextID        uint
}

// NewNotificationRepo 创建内存通知仓储
func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{Notifications: make(map[uint]*notification.Notification)}
}

func (r *NotificationRepo) Create(ctx context.Context, n *notification.Notification) error {
	if n.ID == 0 {
		r.nextID++
		n.ID = r.nextID
	}
	r.Notifications[n.ID] = n
	return nil
}

func (r *NotificationRepo) ListByMember(ctx context.Context, memberID uint) ([]*notification.Notification, error) {
	var result []*notification.Notification
	for _, n := range r.Notifications {
		if n.MemberID == memberID {
			result = append(result, n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, memberID uint) error {
	n, ok := r.Notifications[id]
	if !ok || n.MemberID != memberID {
		return notification.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, memberID uint) error {
	for _, n := range r.Notifications {
		if n.MemberID == memberID {
			n.IsRead = true
		}
	}
	return nil
}
