package linutil

import "github.com/go-delve/tdep/pkg/sysno"

const (
	// AMD64X32SyscallBit is __X32_SYSCALL_BIT, set in every system call
	// number issued by an x32 process.
	AMD64X32SyscallBit = 0x40000000
	// AMD64X32HighRegion is the first x32 number (relative to
	// AMD64X32SyscallBit) of the entry points that x32 does not share with
	// amd64 because their arguments contain pointers or pointer sized
	// fields.
	AMD64X32HighRegion = 512
)

// Translate returns the canonical identifier of the system call with raw
// number raw issued by a process running under the personality mode.
// The second return value is false if raw does not name a system call of
// that personality, including numbers reserved for removed or
// unimplemented system calls.
func Translate(raw uint64, mode ABIMode) (sysno.ID, bool) {
	mode.mustBeValid()
	var id sysno.ID
	switch mode {
	case ABINative:
		if raw < uint64(len(amd64Syscalls)) {
			id = amd64Syscalls[raw]
		}
	case ABICompat:
		if raw < AMD64X32SyscallBit {
			return sysno.Invalid, false
		}
		n := raw - AMD64X32SyscallBit
		switch {
		case n < uint64(len(x32Syscalls)):
			id = x32Syscalls[n]
		case n >= AMD64X32HighRegion && n-AMD64X32HighRegion < uint64(len(x32HighSyscalls)):
			id = x32HighSyscalls[n-AMD64X32HighRegion]
		}
	}
	return id, id != sysno.Invalid
}

// RawNumber returns the raw number a process running under the
// personality mode uses to invoke id.
func RawNumber(id sysno.ID, mode ABIMode) (uint64, bool) {
	mode.mustBeValid()
	if !id.Valid() {
		return 0, false
	}
	raw := rawNumbers[mode][id]
	return raw, raw != noRawNumber
}

// SyscallEntry is a row of a system call table.
type SyscallEntry struct {
	Raw uint64
	ID  sysno.ID
}

// SyscallTable returns every system call of the personality mode, sorted
// by raw number.
func SyscallTable(mode ABIMode) []SyscallEntry {
	mode.mustBeValid()
	var r []SyscallEntry
	add := func(base uint64, tbl []sysno.ID) {
		for n, id := range tbl {
			if id != sysno.Invalid {
				r = append(r, SyscallEntry{Raw: base + uint64(n), ID: id})
			}
		}
	}
	switch mode {
	case ABINative:
		add(0, amd64Syscalls[:])
	case ABICompat:
		add(AMD64X32SyscallBit, x32Syscalls[:])
		add(AMD64X32SyscallBit+AMD64X32HighRegion, x32HighSyscalls[:])
	}
	return r
}

const noRawNumber = ^uint64(0)

var rawNumbers = func() (r [2][]uint64) {
	for mode := range r {
		r[mode] = make([]uint64, len(sysno.All())+1)
		for i := range r[mode] {
			r[mode][i] = noRawNumber
		}
	}
	for raw, id := range amd64Syscalls {
		if id != sysno.Invalid {
			r[ABINative][id] = uint64(raw)
		}
	}
	for n, id := range x32Syscalls {
		if id != sysno.Invalid {
			r[ABICompat][id] = AMD64X32SyscallBit + uint64(n)
		}
	}
	for n, id := range x32HighSyscalls {
		if id != sysno.Invalid {
			r[ABICompat][id] = AMD64X32SyscallBit + AMD64X32HighRegion + uint64(n)
		}
	}
	return r
}()

// Native amd64 system call numbers, from arch/x86/entry/syscalls/syscall_64.tbl.
// Missing entries are unused or removed system calls.
var amd64Syscalls = [...]sysno.ID{
	0:   sysno.Read,
	1:   sysno.Write,
	2:   sysno.Open,
	3:   sysno.Close,
	4:   sysno.Newstat,
	5:   sysno.Newfstat,
	6:   sysno.Newlstat,
	7:   sysno.Poll,
	8:   sysno.Lseek,
	9:   sysno.Mmap,
	10:  sysno.Mprotect,
	11:  sysno.Munmap,
	12:  sysno.Brk,
	13:  sysno.RtSigaction,
	14:  sysno.RtSigprocmask,
	15:  sysno.RtSigreturn,
	16:  sysno.Ioctl,
	17:  sysno.Pread64,
	18:  sysno.Pwrite64,
	19:  sysno.Readv,
	20:  sysno.Writev,
	21:  sysno.Access,
	22:  sysno.Pipe,
	23:  sysno.Select,
	24:  sysno.SchedYield,
	25:  sysno.Mremap,
	26:  sysno.Msync,
	27:  sysno.Mincore,
	28:  sysno.Madvise,
	29:  sysno.Shmget,
	30:  sysno.Shmat,
	31:  sysno.Shmctl,
	32:  sysno.Dup,
	33:  sysno.Dup2,
	34:  sysno.Pause,
	35:  sysno.Nanosleep,
	36:  sysno.Getitimer,
	37:  sysno.Alarm,
	38:  sysno.Setitimer,
	39:  sysno.Getpid,
	40:  sysno.Sendfile64,
	41:  sysno.Socket,
	42:  sysno.Connect,
	43:  sysno.Accept,
	44:  sysno.Sendto,
	45:  sysno.Recvfrom,
	46:  sysno.Sendmsg,
	47:  sysno.Recvmsg,
	48:  sysno.Shutdown,
	49:  sysno.Bind,
	50:  sysno.Listen,
	51:  sysno.Getsockname,
	52:  sysno.Getpeername,
	53:  sysno.Socketpair,
	54:  sysno.Setsockopt,
	55:  sysno.Getsockopt,
	56:  sysno.Clone,
	57:  sysno.Fork,
	58:  sysno.Vfork,
	59:  sysno.Execve,
	60:  sysno.Exit,
	61:  sysno.Wait4,
	62:  sysno.Kill,
	63:  sysno.Uname,
	64:  sysno.Semget,
	65:  sysno.Semop,
	66:  sysno.Semctl,
	67:  sysno.Shmdt,
	68:  sysno.Msgget,
	69:  sysno.Msgsnd,
	70:  sysno.Msgrcv,
	71:  sysno.Msgctl,
	72:  sysno.Fcntl,
	73:  sysno.Flock,
	74:  sysno.Fsync,
	75:  sysno.Fdatasync,
	76:  sysno.Truncate,
	77:  sysno.Ftruncate,
	78:  sysno.Getdents,
	79:  sysno.Getcwd,
	80:  sysno.Chdir,
	81:  sysno.Fchdir,
	82:  sysno.Rename,
	83:  sysno.Mkdir,
	84:  sysno.Rmdir,
	85:  sysno.Creat,
	86:  sysno.Link,
	87:  sysno.Unlink,
	88:  sysno.Symlink,
	89:  sysno.Readlink,
	90:  sysno.Chmod,
	91:  sysno.Fchmod,
	92:  sysno.Chown,
	93:  sysno.Fchown,
	94:  sysno.Lchown,
	95:  sysno.Umask,
	96:  sysno.Gettimeofday,
	97:  sysno.Getrlimit,
	98:  sysno.Getrusage,
	99:  sysno.Sysinfo,
	100: sysno.Times,
	101: sysno.Ptrace,
	102: sysno.Getuid,
	103: sysno.Syslog,
	104: sysno.Getgid,
	105: sysno.Setuid,
	106: sysno.Setgid,
	107: sysno.Geteuid,
	108: sysno.Getegid,
	109: sysno.Setpgid,
	110: sysno.Getppid,
	111: sysno.Getpgrp,
	112: sysno.Setsid,
	113: sysno.Setreuid,
	114: sysno.Setregid,
	115: sysno.Getgroups,
	116: sysno.Setgroups,
	117: sysno.Setresuid,
	118: sysno.Getresuid,
	119: sysno.Setresgid,
	120: sysno.Getresgid,
	121: sysno.Getpgid,
	122: sysno.Setfsuid,
	123: sysno.Setfsgid,
	124: sysno.Getsid,
	125: sysno.Capget,
	126: sysno.Capset,
	127: sysno.RtSigpending,
	128: sysno.RtSigtimedwait,
	129: sysno.RtSigqueueinfo,
	130: sysno.RtSigsuspend,
	131: sysno.Sigaltstack,
	132: sysno.Utime,
	133: sysno.Mknod,
	135: sysno.Personality,
	136: sysno.Ustat,
	137: sysno.Statfs,
	138: sysno.Fstatfs,
	139: sysno.Sysfs,
	140: sysno.Getpriority,
	141: sysno.Setpriority,
	142: sysno.SchedSetparam,
	143: sysno.SchedGetparam,
	144: sysno.SchedSetscheduler,
	145: sysno.SchedGetscheduler,
	146: sysno.SchedGetPriorityMax,
	147: sysno.SchedGetPriorityMin,
	148: sysno.SchedRrGetInterval,
	149: sysno.Mlock,
	150: sysno.Munlock,
	151: sysno.Mlockall,
	152: sysno.Munlockall,
	153: sysno.Vhangup,
	154: sysno.ModifyLdt,
	155: sysno.PivotRoot,
	156: sysno.Sysctl,
	157: sysno.Prctl,
	158: sysno.ArchPrctl,
	159: sysno.Adjtimex,
	160: sysno.Setrlimit,
	161: sysno.Chroot,
	162: sysno.Sync,
	163: sysno.Acct,
	164: sysno.Settimeofday,
	165: sysno.Mount,
	166: sysno.Umount,
	167: sysno.Swapon,
	168: sysno.Swapoff,
	169: sysno.Reboot,
	170: sysno.Sethostname,
	171: sysno.Setdomainname,
	172: sysno.Iopl,
	173: sysno.Ioperm,
	175: sysno.InitModule,
	176: sysno.DeleteModule,
	179: sysno.Quotactl,
	180: sysno.Nfsservctl,
	186: sysno.Gettid,
	187: sysno.Readahead,
	188: sysno.Setxattr,
	189: sysno.Lsetxattr,
	190: sysno.Fsetxattr,
	191: sysno.Getxattr,
	192: sysno.Lgetxattr,
	193: sysno.Fgetxattr,
	194: sysno.Listxattr,
	195: sysno.Llistxattr,
	196: sysno.Flistxattr,
	197: sysno.Removexattr,
	198: sysno.Lremovexattr,
	199: sysno.Fremovexattr,
	200: sysno.Tkill,
	201: sysno.Time,
	202: sysno.Futex,
	203: sysno.SchedSetaffinity,
	204: sysno.SchedGetaffinity,
	206: sysno.IoSetup,
	207: sysno.IoDestroy,
	208: sysno.IoGetevents,
	209: sysno.IoSubmit,
	210: sysno.IoCancel,
	212: sysno.LookupDcookie,
	213: sysno.EpollCreate,
	216: sysno.RemapFilePages,
	217: sysno.Getdents64,
	218: sysno.SetTidAddress,
	219: sysno.RestartSyscall,
	220: sysno.Semtimedop,
	221: sysno.Fadvise64,
	222: sysno.TimerCreate,
	223: sysno.TimerSettime,
	224: sysno.TimerGettime,
	225: sysno.TimerGetoverrun,
	226: sysno.TimerDelete,
	227: sysno.ClockSettime,
	228: sysno.ClockGettime,
	229: sysno.ClockGetres,
	230: sysno.ClockNanosleep,
	231: sysno.ExitGroup,
	232: sysno.EpollWait,
	233: sysno.EpollCtl,
	234: sysno.Tgkill,
	235: sysno.Utimes,
	237: sysno.Mbind,
	238: sysno.SetMempolicy,
	239: sysno.GetMempolicy,
	240: sysno.MqOpen,
	241: sysno.MqUnlink,
	242: sysno.MqTimedsend,
	243: sysno.MqTimedreceive,
	244: sysno.MqNotify,
	245: sysno.MqGetsetattr,
	246: sysno.KexecLoad,
	247: sysno.Waitid,
	248: sysno.AddKey,
	249: sysno.RequestKey,
	250: sysno.Keyctl,
	251: sysno.IoprioSet,
	252: sysno.IoprioGet,
	253: sysno.InotifyInit,
	254: sysno.InotifyAddWatch,
	255: sysno.InotifyRmWatch,
	256: sysno.MigratePages,
	257: sysno.Openat,
	258: sysno.Mkdirat,
	259: sysno.Mknodat,
	260: sysno.Fchownat,
	261: sysno.Futimesat,
	262: sysno.Newfstatat,
	263: sysno.Unlinkat,
	264: sysno.Renameat,
	265: sysno.Linkat,
	266: sysno.Symlinkat,
	267: sysno.Readlinkat,
	268: sysno.Fchmodat,
	269: sysno.Faccessat,
	270: sysno.Pselect6,
	271: sysno.Ppoll,
	272: sysno.Unshare,
	273: sysno.SetRobustList,
	274: sysno.GetRobustList,
	275: sysno.Splice,
	276: sysno.Tee,
	277: sysno.SyncFileRange,
	278: sysno.Vmsplice,
	279: sysno.MovePages,
	293: sysno.Pipe2,
	318: sysno.Getrandom,
}

// x32 system call numbers below AMD64X32HighRegion, relative to
// AMD64X32SyscallBit. These share the amd64 entry point and number.
var x32Syscalls = [...]sysno.ID{
	0:   sysno.Read,
	1:   sysno.Write,
	2:   sysno.Open,
	3:   sysno.Close,
	4:   sysno.Newstat,
	5:   sysno.Newfstat,
	6:   sysno.Newlstat,
	7:   sysno.Poll,
	8:   sysno.Lseek,
	9:   sysno.Mmap,
	10:  sysno.Mprotect,
	11:  sysno.Munmap,
	12:  sysno.Brk,
	14:  sysno.RtSigprocmask,
	17:  sysno.Pread64,
	18:  sysno.Pwrite64,
	21:  sysno.Access,
	22:  sysno.Pipe,
	23:  sysno.Select,
	24:  sysno.SchedYield,
	25:  sysno.Mremap,
	26:  sysno.Msync,
	27:  sysno.Mincore,
	28:  sysno.Madvise,
	29:  sysno.Shmget,
	30:  sysno.Shmat,
	31:  sysno.Shmctl,
	32:  sysno.Dup,
	33:  sysno.Dup2,
	34:  sysno.Pause,
	35:  sysno.Nanosleep,
	36:  sysno.Getitimer,
	37:  sysno.Alarm,
	38:  sysno.Setitimer,
	39:  sysno.Getpid,
	40:  sysno.Sendfile64,
	41:  sysno.Socket,
	42:  sysno.Connect,
	43:  sysno.Accept,
	44:  sysno.Sendto,
	48:  sysno.Shutdown,
	49:  sysno.Bind,
	50:  sysno.Listen,
	51:  sysno.Getsockname,
	52:  sysno.Getpeername,
	53:  sysno.Socketpair,
	56:  sysno.Clone,
	57:  sysno.Fork,
	58:  sysno.Vfork,
	60:  sysno.Exit,
	61:  sysno.Wait4,
	62:  sysno.Kill,
	63:  sysno.Uname,
	64:  sysno.Semget,
	65:  sysno.Semop,
	66:  sysno.Semctl,
	67:  sysno.Shmdt,
	68:  sysno.Msgget,
	69:  sysno.Msgsnd,
	70:  sysno.Msgrcv,
	71:  sysno.Msgctl,
	72:  sysno.Fcntl,
	73:  sysno.Flock,
	74:  sysno.Fsync,
	75:  sysno.Fdatasync,
	76:  sysno.Truncate,
	77:  sysno.Ftruncate,
	78:  sysno.Getdents,
	79:  sysno.Getcwd,
	80:  sysno.Chdir,
	81:  sysno.Fchdir,
	82:  sysno.Rename,
	83:  sysno.Mkdir,
	84:  sysno.Rmdir,
	85:  sysno.Creat,
	86:  sysno.Link,
	87:  sysno.Unlink,
	88:  sysno.Symlink,
	89:  sysno.Readlink,
	90:  sysno.Chmod,
	91:  sysno.Fchmod,
	92:  sysno.Chown,
	93:  sysno.Fchown,
	94:  sysno.Lchown,
	95:  sysno.Umask,
	96:  sysno.Gettimeofday,
	97:  sysno.Getrlimit,
	98:  sysno.Getrusage,
	99:  sysno.Sysinfo,
	100: sysno.Times,
	102: sysno.Getuid,
	103: sysno.Syslog,
	104: sysno.Getgid,
	105: sysno.Setuid,
	106: sysno.Setgid,
	107: sysno.Geteuid,
	108: sysno.Getegid,
	109: sysno.Setpgid,
	110: sysno.Getppid,
	111: sysno.Getpgrp,
	112: sysno.Setsid,
	113: sysno.Setreuid,
	114: sysno.Setregid,
	115: sysno.Getgroups,
	116: sysno.Setgroups,
	117: sysno.Setresuid,
	118: sysno.Getresuid,
	119: sysno.Setresgid,
	120: sysno.Getresgid,
	121: sysno.Getpgid,
	122: sysno.Setfsuid,
	123: sysno.Setfsgid,
	124: sysno.Getsid,
	125: sysno.Capget,
	126: sysno.Capset,
	130: sysno.RtSigsuspend,
	132: sysno.Utime,
	133: sysno.Mknod,
	135: sysno.Personality,
	136: sysno.Ustat,
	137: sysno.Statfs,
	138: sysno.Fstatfs,
	139: sysno.Sysfs,
	140: sysno.Getpriority,
	141: sysno.Setpriority,
	142: sysno.SchedSetparam,
	143: sysno.SchedGetparam,
	144: sysno.SchedSetscheduler,
	145: sysno.SchedGetscheduler,
	146: sysno.SchedGetPriorityMax,
	147: sysno.SchedGetPriorityMin,
	148: sysno.SchedRrGetInterval,
	149: sysno.Mlock,
	150: sysno.Munlock,
	151: sysno.Mlockall,
	152: sysno.Munlockall,
	153: sysno.Vhangup,
	154: sysno.ModifyLdt,
	155: sysno.PivotRoot,
	156: sysno.Sysctl,
	157: sysno.Prctl,
	158: sysno.ArchPrctl,
	159: sysno.Adjtimex,
	160: sysno.Setrlimit,
	161: sysno.Chroot,
	162: sysno.Sync,
	163: sysno.Acct,
	164: sysno.Settimeofday,
	165: sysno.Mount,
	166: sysno.Umount,
	167: sysno.Swapon,
	168: sysno.Swapoff,
	169: sysno.Reboot,
	170: sysno.Sethostname,
	171: sysno.Setdomainname,
	172: sysno.Iopl,
	173: sysno.Ioperm,
	175: sysno.InitModule,
	176: sysno.DeleteModule,
	179: sysno.Quotactl,
	186: sysno.Gettid,
	187: sysno.Readahead,
	188: sysno.Setxattr,
	189: sysno.Lsetxattr,
	190: sysno.Fsetxattr,
	191: sysno.Getxattr,
	192: sysno.Lgetxattr,
	193: sysno.Fgetxattr,
	194: sysno.Listxattr,
	195: sysno.Llistxattr,
	196: sysno.Flistxattr,
	197: sysno.Removexattr,
	198: sysno.Lremovexattr,
	199: sysno.Fremovexattr,
	200: sysno.Tkill,
	201: sysno.Time,
	202: sysno.Futex,
	203: sysno.SchedSetaffinity,
	204: sysno.SchedGetaffinity,
	206: sysno.IoSetup,
	207: sysno.IoDestroy,
	208: sysno.IoGetevents,
	209: sysno.IoSubmit,
	210: sysno.IoCancel,
	212: sysno.LookupDcookie,
	213: sysno.EpollCreate,
	216: sysno.RemapFilePages,
	217: sysno.Getdents64,
	218: sysno.SetTidAddress,
	219: sysno.RestartSyscall,
	220: sysno.Semtimedop,
	221: sysno.Fadvise64,
	223: sysno.TimerSettime,
	224: sysno.TimerGettime,
	225: sysno.TimerGetoverrun,
	226: sysno.TimerDelete,
	227: sysno.ClockSettime,
	228: sysno.ClockGettime,
	229: sysno.ClockGetres,
	230: sysno.ClockNanosleep,
	231: sysno.ExitGroup,
	232: sysno.EpollWait,
	233: sysno.EpollCtl,
	234: sysno.Tgkill,
	235: sysno.Utimes,
	237: sysno.Mbind,
	238: sysno.SetMempolicy,
	239: sysno.GetMempolicy,
	240: sysno.MqOpen,
	241: sysno.MqUnlink,
	242: sysno.MqTimedsend,
	243: sysno.MqTimedreceive,
	245: sysno.MqGetsetattr,
	248: sysno.AddKey,
	249: sysno.RequestKey,
	250: sysno.Keyctl,
	251: sysno.IoprioSet,
	252: sysno.IoprioGet,
	253: sysno.InotifyInit,
	254: sysno.InotifyAddWatch,
	255: sysno.InotifyRmWatch,
	256: sysno.MigratePages,
	257: sysno.Openat,
	258: sysno.Mkdirat,
	259: sysno.Mknodat,
	260: sysno.Fchownat,
	261: sysno.Futimesat,
	262: sysno.Newfstatat,
	263: sysno.Unlinkat,
	264: sysno.Renameat,
	265: sysno.Linkat,
	266: sysno.Symlinkat,
	267: sysno.Readlinkat,
	268: sysno.Fchmodat,
	269: sysno.Faccessat,
	270: sysno.Pselect6,
	271: sysno.Ppoll,
	272: sysno.Unshare,
	275: sysno.Splice,
	276: sysno.Tee,
	277: sysno.SyncFileRange,
}

// x32 system call numbers from AMD64X32HighRegion onward, relative to
// AMD64X32SyscallBit+AMD64X32HighRegion.
var x32HighSyscalls = [...]sysno.ID{
	0:  sysno.RtSigaction,
	1:  sysno.RtSigreturn,
	2:  sysno.Ioctl,
	3:  sysno.Readv,
	4:  sysno.Writev,
	5:  sysno.Recvfrom,
	6:  sysno.Sendmsg,
	7:  sysno.Recvmsg,
	8:  sysno.Execve,
	9:  sysno.Ptrace,
	10: sysno.RtSigpending,
	11: sysno.RtSigtimedwait,
	12: sysno.RtSigqueueinfo,
	13: sysno.Sigaltstack,
	14: sysno.TimerCreate,
	15: sysno.MqNotify,
	16: sysno.KexecLoad,
	17: sysno.Waitid,
	18: sysno.SetRobustList,
	19: sysno.GetRobustList,
	20: sysno.Vmsplice,
	21: sysno.MovePages,
	22: sysno.Preadv,
	23: sysno.Pwritev,
	24: sysno.RtTgsigqueueinfo,
	25: sysno.Recvmmsg,
	26: sysno.Sendmmsg,
	27: sysno.ProcessVmReadv,
	28: sysno.ProcessVmWritev,
	29: sysno.Setsockopt,
	30: sysno.Getsockopt,
}
