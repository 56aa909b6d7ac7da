package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/internal/clients"
	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/models"
	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
	"github.com/c14220110/pemeriksaan-gateway/ws"
)

// VisitService adalah orchestrator satu kunjungan: intake → vitals → diagnosa →
// resep → selesai. Urutan tahap dijaga di sisi klien dengan menolak memulai
// tahap lanjut bila status lokal menunjukkan tahap sebelumnya belum selesai;
// tidak ada transaksi server-side lintas layanan.
//
// Kegagalan autentikasi di tengah workflow tidak menghapus draft resep: login
// ulang melanjutkan dari draft yang sama alih-alih membuat header ganda.
type VisitService struct {
	Pendaftaran *clients.PendaftaranClient
	Pemeriksaan *clients.PemeriksaanClient
	Resep       *clients.ResepClient
	Obat        *clients.ObatClient
	StatusSvc   *clients.StatusClient
	Drafts      DraftStore
	Hub         *ws.Hub
	Logger      *zap.Logger
}

// currentStatus membaca status terkini satu kunjungan dari layanan status.
func (s *VisitService) currentStatus(ctx context.Context, token, noRegistrasi string) (models.Status, error) {
	dto, err := s.StatusSvc.Current(ctx, token, noRegistrasi)
	if err != nil {
		return models.StatusUnknown, err
	}
	return models.ParseStatus(dto.Status)
}

// advance menaikkan status di layanan pendaftaran lalu menyiarkannya ke dashboard.
func (s *VisitService) advance(ctx context.Context, token, noRegistrasi string, to models.Status) error {
	if err := s.Pendaftaran.UpdateStatus(ctx, token, noRegistrasi, to.String()); err != nil {
		return err
	}
	s.Logger.Info("status kunjungan berubah",
		zap.String("no_registrasi", noRegistrasi),
		zap.String("status", to.String()))
	if s.Hub != nil {
		s.Hub.BroadcastStatus(noRegistrasi, to)
	}
	return nil
}

// RecordVitals menyimpan hasil intake perawat dan menaikkan status kunjungan
// menuju diperiksa. Validasi dilakukan sebelum panggilan jaringan apa pun;
// seluruh pelanggaran field dikembalikan sekaligus.
func (s *VisitService) RecordVitals(ctx context.Context, token, idPerawat, noRegistrasi string, v models.Vitals, keluhan string) (*models.Pemeriksaan, error) {
	if err := models.ValidateVitals(v, keluhan); err != nil {
		return nil, err
	}

	kunjungan, err := s.Pendaftaran.Find(ctx, token, noRegistrasi)
	if err != nil {
		return nil, err
	}
	st, err := models.ParseStatus(kunjungan.Status)
	if err != nil {
		return nil, err
	}
	if !models.CanAdvance(st, models.StatusExaminedByNurse) {
		return nil, errs.Validation("status",
			"kunjungan tidak dalam antrian menunggu, status saat ini: "+st.String())
	}

	dto := clients.PemeriksaanDTO{
		NoRegistrasi: noRegistrasi,
		RM:           kunjungan.RM,
		IDPerawat:    idPerawat,
		// Layanan lama menyimpan suhu dikali 10 (365 untuk 36.5°C).
		Suhu:        int(math.Round(v.Suhu * 10)),
		Tensi:       v.Tensi,
		TinggiBadan: int(math.Round(v.TinggiBadan)),
		BeratBadan:  int(math.Round(v.BeratBadan)),
		Keluhan:     keluhan,
	}
	if err := s.Pemeriksaan.Create(ctx, token, dto); err != nil {
		return nil, err
	}

	if err := s.advance(ctx, token, noRegistrasi, models.StatusExaminedByNurse); err != nil {
		return nil, err
	}
	return &models.Pemeriksaan{
		NoRegistrasi: noRegistrasi,
		RM:           kunjungan.RM,
		Vitals:       v,
		Keluhan:      keluhan,
	}, nil
}

// RecordDiagnosis mengisi diagnosa + tindakan dokter pada record pemeriksaan
// yang sudah dibuat perawat, lalu menaikkan status menjadi terdiagnosa.
// Mengulang diagnosa pada kunjungan yang sudah terdiagnosa diizinkan
// (menimpa record yang sama), tanpa transisi status kedua.
func (s *VisitService) RecordDiagnosis(ctx context.Context, token, noRegistrasi, diagnosa, tindakan string) error {
	verr := &errs.ValidationError{}
	if diagnosa == "" {
		verr.Add("diagnosa", "diagnosa wajib diisi")
	}
	if tindakan == "" {
		verr.Add("tindakan", "tindakan wajib diisi")
	}
	if !verr.Empty() {
		return verr
	}

	st, err := s.currentStatus(ctx, token, noRegistrasi)
	if err != nil {
		return err
	}
	if st < models.StatusExaminedByNurse || st >= models.StatusPrescribed {
		return errs.Validation("status",
			"kunjungan belum diperiksa perawat atau sudah masuk tahap resep, status saat ini: "+st.String())
	}

	if err := s.Pemeriksaan.UpdateDiagnosa(ctx, token, noRegistrasi, diagnosa, tindakan); err != nil {
		return err
	}
	if st == models.StatusExaminedByNurse {
		return s.advance(ctx, token, noRegistrasi, models.StatusDiagnosed)
	}
	return nil
}

// CreateResepHeader membuat header resep untuk satu registrasi, idempoten:
// bila header sudah pernah dibuat dan belum difinalkan/dibatalkan, id yang
// sama dikembalikan tanpa panggilan create kedua ke layanan remote.
func (s *VisitService) CreateResepHeader(ctx context.Context, token, noRegistrasi string) (string, error) {
	draft, err := s.Drafts.Get(noRegistrasi)
	if err != nil {
		return "", err
	}
	if draft != nil {
		return draft.IDResep, nil
	}

	st, err := s.currentStatus(ctx, token, noRegistrasi)
	if err != nil {
		return "", err
	}
	if !models.CanAdvance(st, models.StatusPrescribed) {
		return "", errs.Validation("status",
			"resep hanya bisa dibuat setelah diagnosa, status saat ini: "+st.String())
	}

	idResep, err := s.Resep.CreateHeader(ctx, token, noRegistrasi)
	if err != nil {
		return "", err
	}
	if err := s.Drafts.Put(noRegistrasi, models.ResepDraft{IDResep: idResep}); err != nil {
		return "", err
	}
	if err := s.advance(ctx, token, noRegistrasi, models.StatusPrescribed); err != nil {
		return "", err
	}
	return idResep, nil
}

// draftFor mengambil draft yang harus ada dan cocok dengan idResep yang diberikan.
func (s *VisitService) draftFor(noRegistrasi, idResep string) (*models.ResepDraft, error) {
	draft, err := s.Drafts.Get(noRegistrasi)
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.IDResep != idResep {
		return nil, errs.Validation("resep",
			"tidak ada draft resep "+idResep+" untuk registrasi "+noRegistrasi)
	}
	return draft, nil
}

// AddResepDetail melampirkan satu baris obat ke header resep. Boleh dipanggil
// berulang; setiap baris adalah satu tulisan remote independen.
func (s *VisitService) AddResepDetail(ctx context.Context, token, noRegistrasi, idResep string, d models.DetailResep) error {
	if err := models.ValidateDetailResep(d); err != nil {
		return err
	}
	draft, err := s.draftFor(noRegistrasi, idResep)
	if err != nil {
		return err
	}

	if err := s.Resep.AddDetail(ctx, token, idResep, clients.DetailResepDTO{
		IDObat:      d.IDObat,
		Jumlah:      d.Jumlah,
		AturanPakai: d.AturanPakai,
	}); err != nil {
		return err
	}

	draft.Lines++
	return s.Drafts.Put(noRegistrasi, *draft)
}

// FinalizeResep menutup kunjungan setelah semua baris obat dilampirkan.
// Resep tanpa baris obat ditolak. Draft baru dihapus setelah transisi status
// berhasil, sehingga kegagalan autentikasi menyisakan draft untuk dilanjutkan.
func (s *VisitService) FinalizeResep(ctx context.Context, token, noRegistrasi, idResep string) error {
	draft, err := s.draftFor(noRegistrasi, idResep)
	if err != nil {
		return err
	}
	if draft.Lines == 0 {
		return errs.Validation("resep", "resep belum memiliki detail obat")
	}

	st, err := s.currentStatus(ctx, token, noRegistrasi)
	if err != nil {
		return err
	}
	if !models.CanAdvance(st, models.StatusClosed) {
		return errs.Validation("status",
			"kunjungan tidak dalam tahap resep, status saat ini: "+st.String())
	}

	if err := s.advance(ctx, token, noRegistrasi, models.StatusClosed); err != nil {
		return err
	}
	return s.Drafts.Delete(noRegistrasi)
}

// CancelResep menghapus header resep (beserta baris yang sudah terlampir) dan
// mengembalikan kunjungan ke status sebelum tahap resep. Tersedia kapan pun
// sebelum finalisasi.
func (s *VisitService) CancelResep(ctx context.Context, token, noRegistrasi, idResep string) error {
	if _, err := s.draftFor(noRegistrasi, idResep); err != nil {
		return err
	}

	if err := s.Resep.Delete(ctx, token, idResep); err != nil {
		return err
	}
	if err := s.Drafts.Delete(noRegistrasi); err != nil {
		return err
	}

	st, err := s.currentStatus(ctx, token, noRegistrasi)
	if err != nil {
		return err
	}
	if models.CanRevert(st, models.StatusDiagnosed) {
		if err := s.Pendaftaran.UpdateStatus(ctx, token, noRegistrasi, models.StatusDiagnosed.String()); err != nil {
			return err
		}
		if s.Hub != nil {
			s.Hub.BroadcastStatus(noRegistrasi, models.StatusDiagnosed)
		}
	}
	return nil
}

// ListKunjungan mengambil daftar kunjungan untuk layar antrian, dengan status
// yang sudah dikanonikalisasi. Status yang tidak dikenali dibiarkan unknown
// dan dicatat, bukan menggagalkan seluruh daftar.
func (s *VisitService) ListKunjungan(ctx context.Context, token, tanggal string, idPoli int) ([]models.Kunjungan, error) {
	dtos, err := s.Pendaftaran.ListKunjungan(ctx, token, tanggal, idPoli)
	if err != nil {
		return nil, err
	}
	list := make([]models.Kunjungan, 0, len(dtos))
	for _, dto := range dtos {
		st, perr := models.ParseStatus(dto.Status)
		if perr != nil {
			s.Logger.Warn("status kunjungan tidak dikenali",
				zap.String("no_registrasi", dto.NoRegistrasi),
				zap.Any("status", dto.Status))
			st = models.StatusUnknown
		}
		list = append(list, models.Kunjungan{
			NoRegistrasi: dto.NoRegistrasi,
			RM:           dto.RM,
			NamaPasien:   dto.NamaPasien,
			IDPoli:       dto.IDPoli,
			Tanggal:      dto.Tanggal,
			Status:       st,
		})
	}
	return list, nil
}

// GetPemeriksaan mengambil record pemeriksaan untuk layar detail/rangkuman.
func (s *VisitService) GetPemeriksaan(ctx context.Context, token, noRegistrasi string) (*models.Pemeriksaan, error) {
	dto, err := s.Pemeriksaan.Get(ctx, token, noRegistrasi)
	if err != nil {
		return nil, err
	}
	p := &models.Pemeriksaan{
		NoRegistrasi: dto.NoRegistrasi,
		RM:           dto.RM,
		Vitals: models.Vitals{
			Suhu:        float64(dto.Suhu) / 10,
			Tensi:       dto.Tensi,
			TinggiBadan: float64(dto.TinggiBadan),
			BeratBadan:  float64(dto.BeratBadan),
		},
		Keluhan: dto.Keluhan,
	}
	if dto.Diagnosa != nil {
		p.Diagnosa = *dto.Diagnosa
	}
	if dto.Tindakan != nil {
		p.Tindakan = *dto.Tindakan
	}
	return p, nil
}

// CurrentStatus mengambil status terkini yang sudah dikanonikalisasi.
func (s *VisitService) CurrentStatus(ctx context.Context, token, noRegistrasi string) (models.Status, error) {
	return s.currentStatus(ctx, token, noRegistrasi)
}

// History mengambil riwayat status satu kunjungan untuk layar history.
func (s *VisitService) History(ctx context.Context, token, noRegistrasi string) ([]models.StatusEntry, error) {
	dtos, err := s.StatusSvc.History(ctx, token, noRegistrasi)
	if err != nil {
		return nil, err
	}
	entries := make([]models.StatusEntry, 0, len(dtos))
	for _, dto := range dtos {
		st, perr := models.ParseStatus(dto.Status)
		if perr != nil {
			st = models.StatusUnknown
		}
		entries = append(entries, models.StatusEntry{
			Status:     st,
			Keterangan: dto.Keterangan,
			Tanggal:    dto.Tanggal,
		})
	}
	return entries, nil
}

// ListObat meneruskan pencarian katalog obat untuk form resep.
func (s *VisitService) ListObat(ctx context.Context, token, q string, limit, page int) ([]clients.ObatDTO, error) {
	return s.Obat.List(ctx, token, q, limit, page)
}
